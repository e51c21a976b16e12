package ports

// Environment resolves variables from the process environment or a substitute.
type Environment interface {
	LookupEnv(key string) (string, bool)
}
