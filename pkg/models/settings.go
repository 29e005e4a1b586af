package models

// Settings represents the application configuration
type Settings struct {
	Canvas   CanvasSettings   `yaml:"canvas"`
	Provider ProviderSettings `yaml:"provider"`
	Storage  StorageSettings  `yaml:"storage"`
	Server   ServerSettings   `yaml:"server"`
	UI       UISettings       `yaml:"ui"`
}

// CanvasSettings controls the terminal canvas size in cells
type CanvasSettings struct {
	Columns int `yaml:"columns"`
	Rows    int `yaml:"rows"`
}

// ProviderSettings configures the image generation service
type ProviderSettings struct {
	Endpoint       string `yaml:"endpoint"`
	RefineEndpoint string `yaml:"refine_endpoint,omitempty"`
	APIKeyEnv      string `yaml:"api_key_env"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	ElementPrompt  string `yaml:"element_prompt"` // %s is replaced by the user's description
	Offline        bool   `yaml:"offline"`        // use the built-in placeholder provider
}

// StorageSettings controls where saved concepts live
type StorageSettings struct {
	ConceptsDB string `yaml:"concepts_db"`
}

// ServerSettings controls the HTTP host
type ServerSettings struct {
	Port         string `yaml:"port"`
	ReadTimeout  int    `yaml:"read_timeout"`
	WriteTimeout int    `yaml:"write_timeout"`
}

// UISettings controls UI preferences
type UISettings struct {
	ShowHelp       bool `yaml:"show_help"`
	ShowLayerPanel bool `yaml:"show_layer_panel"`
}

// DefaultElementPrompt asks for an element on white so multiply blending drops the background.
const DefaultElementPrompt = "isolated tattoo flash element of %s, bold black ink, white background, no border, high contrast, vector style"

// DefaultSettings returns the default configuration
func DefaultSettings() *Settings {
	return &Settings{
		Canvas: CanvasSettings{
			Columns: 64,
			Rows:    32,
		},
		Provider: ProviderSettings{
			Endpoint:       "http://localhost:8089/v1/elements",
			APIKeyEnv:      "INKSTUDIO_API_KEY",
			TimeoutSeconds: 60,
			ElementPrompt:  DefaultElementPrompt,
		},
		Storage: StorageSettings{
			ConceptsDB: ".inkstudio/concepts.db",
		},
		Server: ServerSettings{
			Port:         "3000",
			ReadTimeout:  10,
			WriteTimeout: 90,
		},
		UI: UISettings{
			ShowHelp:       true,
			ShowLayerPanel: true,
		},
	}
}
