package config

// Config represents the application configuration: identity, logging, and
// the engine parameters that govern how a Simulation is built and run.
type Config struct {
	App struct {
		Name    string `mapstructure:"name" validate:"required"`
		Version string `mapstructure:"version" validate:"required"`
	} `mapstructure:"app" validate:"required"`

	Logging struct {
		Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
		File  string `mapstructure:"file"`
	} `mapstructure:"logging" validate:"required"`

	Engine struct {
		Integrator string  `mapstructure:"integrator" validate:"required,oneof=euler rk4"`
		UnitSystem string  `mapstructure:"unit_system" validate:"required"`
		Gravity    [3]float64 `mapstructure:"gravity"`
		Step       float64 `mapstructure:"step" validate:"required,gt=0"`
		MaxTime    float64 `mapstructure:"max_time" validate:"required,gt=0"`
	} `mapstructure:"engine" validate:"required"`
}
