package config

import "go.uber.org/fx"

// Module loads service settings from flags, the environment and an optional
// .env file.
var Module = fx.Provide(Load)
