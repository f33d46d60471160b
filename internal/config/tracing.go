package config

const defaultServiceName = "expense-tracker"

type TracingConfig struct {
	Service string `yaml:"service-name"`
	Agent   string `yaml:"agent-host-port"`
}

func (s *TracingConfig) ServiceName() string {
	return s.Service
}

// AgentHostPort is empty when traces should not be reported.
func (s *TracingConfig) AgentHostPort() string {
	return s.Agent
}
