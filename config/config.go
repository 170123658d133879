package config

var (
	Version  = "dev"
	ghApiKey string
)

// Brand is the launcher_name reported to the game and in the User-Agent.
const Brand = "lodestone"

func SetVersion(version string) {
	Version = version
}

func SetGitHubApiKey(key string) {
	ghApiKey = key
}

func GetGhApiKey() string {
	return ghApiKey
}
