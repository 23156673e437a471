package discovery

import (
	"fmt"
	"os"

	"github.com/hashicorp/mdns"
)

const serviceType = "_drawboard._tcp"

// Advertise announces the drawing server on the local network so clients can
// find it without typing an address. The returned server must be shut down on
// exit.
func Advertise(instance string, port int) (*mdns.Server, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("could not get hostname: %w", err)
	}
	if instance == "" {
		instance = host
	}

	service, err := mdns.NewMDNSService(
		instance,
		serviceType,
		"", // domain, ".local" by default
		"", // hostname, OS hostname by default
		port,
		nil, // IPs auto-detected
		[]string{"drawboard"},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	return server, nil
}
