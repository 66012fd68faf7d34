// Package environment names the application environment and carries it
// through request contexts.
//
//	env := environment.Parse(os.Getenv("APP_ENV"))
//	handler = environment.Middleware(env)(handler)
package environment
