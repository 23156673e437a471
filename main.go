package main

import (
	"log"
	"net"
	"net/http"
	"strconv"

	"github.com/tusharpaik123/RealTimeCollaborativeDrawingCanvas/internal/config"
	"github.com/tusharpaik123/RealTimeCollaborativeDrawingCanvas/internal/discovery"
	"github.com/tusharpaik123/RealTimeCollaborativeDrawingCanvas/internal/hub"
	"github.com/tusharpaik123/RealTimeCollaborativeDrawingCanvas/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	registry := session.NewRegistry()
	h := hub.New(cfg, registry)

	if cfg.MDNS {
		if port, ok := listenPort(cfg.Addr); ok {
			srv, err := discovery.Advertise(cfg.ServiceName, port)
			if err != nil {
				log.Printf("mDNS advertisement failed, continuing without: %v", err)
			} else {
				defer srv.Shutdown()
				if ip, err := discovery.OutgoingIP(); err == nil {
					log.Printf("share address: ws://%s/ws", net.JoinHostPort(ip, strconv.Itoa(port)))
				}
			}
		}
	}

	log.Printf("drawing server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, h.Routes()); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func listenPort(addr string) (int, bool) {
	_, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return 0, false
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port == 0 {
		return 0, false
	}
	return port, true
}
