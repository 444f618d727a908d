package structures

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
	LogLevel   string
	ListenPort int
}
