package config

import (
	"os"

	"gopkg.in/yaml.v2"
)

// YAMLProvider implements ConfigProvider for YAML configuration files.
type YAMLProvider struct {
	filename string
}

// NewYAMLProvider creates a new YAML configuration provider.
func NewYAMLProvider(filename string) *YAMLProvider {
	return &YAMLProvider{
		filename: filename,
	}
}

// LoadConfig loads the complete configuration from the YAML file.
func (y *YAMLProvider) LoadConfig() (*ConfigData, error) {
	cfgFile, err := os.ReadFile(y.filename)
	if err != nil {
		return nil, err
	}

	// Load into a temporary struct with YAML tags, then convert to the
	// internal format.
	var yamlConfig struct {
		Station struct {
			Name           string  `yaml:"name"`
			Latitude       float64 `yaml:"latitude"`
			Longitude      float64 `yaml:"longitude"`
			UTCOffsetHours float64 `yaml:"utc_offset_hours"`
			SolarProvider  string  `yaml:"solar_provider,omitempty"`
		} `yaml:"station"`
		Source struct {
			Type             string `yaml:"type"`
			Path             string `yaml:"path,omitempty"`
			Delimiter        string `yaml:"delimiter,omitempty"`
			ConnectionString string `yaml:"connection_string,omitempty"`
			StationName      string `yaml:"station_name,omitempty"`
			StartDate        string `yaml:"start_date,omitempty"`
			EndDate          string `yaml:"end_date,omitempty"`
		} `yaml:"source"`
		Shape struct {
			SunsetFraction float64 `yaml:"sunset_fraction,omitempty"`
			CloudExponent  float64 `yaml:"cloud_exponent,omitempty"`
			MaxLagHours    float64 `yaml:"max_lag_hours,omitempty"`
			MinLagHours    float64 `yaml:"min_lag_hours,omitempty"`
		} `yaml:"shape,omitempty"`
		Server struct {
			ListenAddr string `yaml:"listen_addr,omitempty"`
			Port       int    `yaml:"port,omitempty"`
		} `yaml:"server,omitempty"`
	}

	if err := yaml.Unmarshal(cfgFile, &yamlConfig); err != nil {
		return nil, err
	}

	config := &ConfigData{
		Station: StationData{
			Name:           yamlConfig.Station.Name,
			Latitude:       yamlConfig.Station.Latitude,
			Longitude:      yamlConfig.Station.Longitude,
			UTCOffsetHours: yamlConfig.Station.UTCOffsetHours,
			SolarProvider:  yamlConfig.Station.SolarProvider,
		},
		Source: SourceData{
			Type:             yamlConfig.Source.Type,
			Path:             yamlConfig.Source.Path,
			Delimiter:        yamlConfig.Source.Delimiter,
			ConnectionString: yamlConfig.Source.ConnectionString,
			StationName:      yamlConfig.Source.StationName,
			StartDate:        yamlConfig.Source.StartDate,
			EndDate:          yamlConfig.Source.EndDate,
		},
		Shape: ShapeData{
			SunsetFraction: yamlConfig.Shape.SunsetFraction,
			CloudExponent:  yamlConfig.Shape.CloudExponent,
			MaxLagHours:    yamlConfig.Shape.MaxLagHours,
			MinLagHours:    yamlConfig.Shape.MinLagHours,
		},
		Server: ServerData{
			ListenAddr: yamlConfig.Server.ListenAddr,
			Port:       yamlConfig.Server.Port,
		},
	}

	return config, nil
}

// Close is a no-op for file-backed configuration.
func (y *YAMLProvider) Close() error {
	return nil
}
