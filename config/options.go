package config

const (
	defaultLogFile           = "soundbound.log"
	defaultLogLevel          = "info"
	defaultLogFileMaxSize    = 20
	defaultLogFileMaxBackups = 3
	defaultLogFileMaxAge     = 28
	defaultLogCompress       = false
	defaultPort              = 8080
	defaultHost              = "0.0.0.0"
	defaultData              = "/var/opt/soundbound"
	defaultVersion           = "0.1.0"
	defaultPopularLimit      = 20
	defaultSearchLimit       = 50
	defaultOpenLibraryURL    = "https://openlibrary.org"
	defaultSpotifyAPIURL     = "https://api.spotify.com/v1"
	defaultSpotifyTokenURL   = "https://accounts.spotify.com/api/token"
)

// Viper unmarshals with mapstructure tags, so the fields carry those
// instead of json tags.
type Options struct {
	// LogFile is the file to write logs to
	LogFile string `mapstructure:"log_file"`
	// LogLevel is the level of logging to show
	LogLevel string `mapstructure:"log_level"`
	// LogFileMaxSize is the maximum size of the log file before it is rotated
	LogFileMaxSize int `mapstructure:"log_file_max_size"`
	// LogFileMaxBackups is the maximum number of log files to keep
	LogFileMaxBackups int `mapstructure:"log_file_max_backups"`
	// LogFileMaxAge is the maximum number of days to keep a log file
	LogFileMaxAge int `mapstructure:"log_file_max_age"`
	// LogCompress is whether or not to compress the log files
	LogCompress bool `mapstructure:"log_compress"`
	// DSN is the path of the sqlite database
	DSN string `mapstructure:"dsn_uri"`
	// Port is the port to listen on
	Port int `mapstructure:"port"`
	// Host is the host to listen on
	Host string `mapstructure:"host"`
	// Data is the directory to store data
	Data string `mapstructure:"data"`
	// Version is the application version
	Version string `mapstructure:"version"`

	// PopularLimit caps the popular-books listing
	PopularLimit int `mapstructure:"popular_limit"`
	// SearchLimit caps book search results
	SearchLimit int `mapstructure:"search_limit"`

	// External catalog endpoints
	OpenLibraryURL  string `mapstructure:"openlibrary_url"`
	SpotifyAPIURL   string `mapstructure:"spotify_api_url"`
	SpotifyTokenURL string `mapstructure:"spotify_token_url"`
	// Spotify client-credentials pair
	SpotifyClientID     string `mapstructure:"spotify_client_id"`
	SpotifyClientSecret string `mapstructure:"spotify_client_secret"`
}

func GetDefaultOptions() *Options {
	Opts = &Options{
		LogFile:           defaultLogFile,
		LogLevel:          defaultLogLevel,
		LogFileMaxSize:    defaultLogFileMaxSize,
		LogFileMaxBackups: defaultLogFileMaxBackups,
		LogFileMaxAge:     defaultLogFileMaxAge,
		LogCompress:       defaultLogCompress,
		Port:              defaultPort,
		Host:              defaultHost,
		Data:              defaultData,
		Version:           defaultVersion,
		PopularLimit:      defaultPopularLimit,
		SearchLimit:       defaultSearchLimit,
		OpenLibraryURL:    defaultOpenLibraryURL,
		SpotifyAPIURL:     defaultSpotifyAPIURL,
		SpotifyTokenURL:   defaultSpotifyTokenURL,
	}
	return Opts
}
