package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Default solver settings applied to every run
	DefaultWorkers           int        `json:"default_workers"`
	DefaultQueueOrder        QueueOrder `json:"default_queue_order"`
	DefaultAreaPrecheck      bool       `json:"default_area_precheck"`
	DefaultDedupOrientations bool       `json:"default_dedup_orientations"`

	// Export preferences
	ExportDir     string   `json:"export_dir"`     // Directory for exports, "" = next to the input file
	ExportFormats []string `json:"export_formats"` // Formats written after every run: "pdf", "labels", "xlsx", "dxf", "json"

	// Application preferences
	RecentInputs []string `json:"recent_inputs"`
	Theme        string   `json:"theme"` // "light", "dark", "system"
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultWorkers:           defaults.Workers,
		DefaultQueueOrder:        defaults.QueueOrder,
		DefaultAreaPrecheck:      defaults.AreaPrecheck,
		DefaultDedupOrientations: defaults.DedupOrientations,
		ExportFormats:            []string{},
		RecentInputs:             []string{},
		Theme:                    "system",
	}
}

// ApplyToSettings copies the default values from AppConfig into a SolverSettings struct.
func (c AppConfig) ApplyToSettings(s *SolverSettings) {
	if c.DefaultWorkers > 0 {
		s.Workers = c.DefaultWorkers
	}
	if c.DefaultQueueOrder != "" {
		s.QueueOrder = c.DefaultQueueOrder
	}
	s.AreaPrecheck = c.DefaultAreaPrecheck
	s.DedupOrientations = c.DefaultDedupOrientations
}

const maxRecentInputs = 10

// AddRecentInput moves path to the front of the recent inputs list.
func (c *AppConfig) AddRecentInput(path string) {
	recent := []string{path}
	for _, p := range c.RecentInputs {
		if p != path && len(recent) < maxRecentInputs {
			recent = append(recent, p)
		}
	}
	c.RecentInputs = recent
}
