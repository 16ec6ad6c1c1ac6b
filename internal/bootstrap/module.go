// Package bootstrap wires the application's components with fx.  Module
// carries everything the console commands need; HTTPModule adds the API
// server on top of it.
package bootstrap

import "go.uber.org/fx"

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	RedisModule,
	RepositoryModule,
	ServiceModule,
)
