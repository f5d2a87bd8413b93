package discovery

import (
	"fmt"

	"github.com/hashicorp/consul/api"
	"github.com/rs/zerolog"

	"github.com/medtrack/medication-interaction-api/internal/config"
)

// ServiceRegistry registers the service with Consul so other services can
// discover it. Registration is optional and controlled by configuration.
type ServiceRegistry struct {
	client    *api.Client
	serviceID string
	logger    *zerolog.Logger
}

// NewServiceRegistry creates a Consul client for the configured agent.
func NewServiceRegistry(cfg *config.ConsulConfig, logger *zerolog.Logger) (*ServiceRegistry, error) {
	consulCfg := api.DefaultConfig()
	consulCfg.Address = cfg.Address

	client, err := api.NewClient(consulCfg)
	if err != nil {
		return nil, err
	}

	return &ServiceRegistry{
		client:    client,
		serviceID: cfg.ServiceName,
		logger:    logger,
	}, nil
}

// Register announces the service with an HTTP health check on /health.
func (r *ServiceRegistry) Register(cfg *config.ConsulConfig, host string, port int) error {
	registration := &api.AgentServiceRegistration{
		ID:      r.serviceID,
		Name:    cfg.ServiceName,
		Address: host,
		Port:    port,
		Check: &api.AgentServiceCheck{
			HTTP:                           fmt.Sprintf("http://%s:%d/health", host, port),
			Interval:                       "10s",
			Timeout:                        "3s",
			DeregisterCriticalServiceAfter: "1m",
		},
	}

	if err := r.client.Agent().ServiceRegister(registration); err != nil {
		return err
	}

	r.logger.Info().Str("service", cfg.ServiceName).Msg("registered with consul")

	return nil
}

// Deregister removes the service from the Consul catalog.
func (r *ServiceRegistry) Deregister() {
	if err := r.client.Agent().ServiceDeregister(r.serviceID); err != nil {
		r.logger.Error().Err(err).Msg("failed to deregister from consul")
		return
	}

	r.logger.Info().Msg("deregistered from consul")
}
