package discovery

import (
	"fmt"

	"github.com/hashicorp/consul/api"
	"github.com/rs/zerolog"
)

// Registration describes a service instance announced to Consul.
type Registration struct {
	Name string
	Host string
	Port int
	// HealthURL is checked over HTTP. GRPCHealthAddr, when set, takes precedence
	// and is checked with the grpc.health.v1 protocol.
	HealthURL      string
	GRPCHealthAddr string
}

// ConsulRegistry registers and deregisters a single service instance.
type ConsulRegistry struct {
	client *api.Client
	logger *zerolog.Logger
	id     string
}

// NewConsulRegistry creates a Consul client for the agent at addr.
func NewConsulRegistry(addr string, logger *zerolog.Logger) (*ConsulRegistry, error) {
	cfg := api.DefaultConfig()
	cfg.Address = addr

	client, err := api.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("create consul client: %w", err)
	}

	return &ConsulRegistry{client: client, logger: logger}, nil
}

// Register announces the instance with a health check.
func (r *ConsulRegistry) Register(reg Registration) error {
	r.id = fmt.Sprintf("%s-%s-%d", reg.Name, reg.Host, reg.Port)

	check := &api.AgentServiceCheck{
		Interval:                       "10s",
		Timeout:                        "2s",
		DeregisterCriticalServiceAfter: "1m",
	}
	if reg.GRPCHealthAddr != "" {
		check.GRPC = reg.GRPCHealthAddr
	} else {
		check.HTTP = reg.HealthURL
	}

	err := r.client.Agent().ServiceRegister(&api.AgentServiceRegistration{
		ID:      r.id,
		Name:    reg.Name,
		Address: reg.Host,
		Port:    reg.Port,
		Check:   check,
	})
	if err != nil {
		return fmt.Errorf("register service %q: %w", r.id, err)
	}

	r.logger.Info().Str("service_id", r.id).Msg("registered with consul")
	return nil
}

// Deregister removes the instance registered by Register. It is a no-op if
// Register was never called.
func (r *ConsulRegistry) Deregister() error {
	if r.id == "" {
		return nil
	}

	if err := r.client.Agent().ServiceDeregister(r.id); err != nil {
		return fmt.Errorf("deregister service %q: %w", r.id, err)
	}

	r.logger.Info().Str("service_id", r.id).Msg("deregistered from consul")
	return nil
}
