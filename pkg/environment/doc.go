// Package environment carries the deployment environment (development,
// staging, production) through context.Context and HTTP requests.
//
//	env := environment.Parse(os.Getenv("APP_ENV"))
//	r.Use(environment.Middleware(env))
//	log := logger.New(logger.WithEnvironment(env, "intake"))
package environment
