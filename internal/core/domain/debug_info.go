package domain

import "time"

// DebugInfo: замер одного шага разрешения, отдается при debug=true
type DebugInfo struct {
	Event   string            `json:"event"`
	Timing  int64             `json:"timing"`
	Options map[string]string `json:"options,omitempty"`

	startedAt time.Time
}

func StartDebug(event string) DebugInfo {
	return DebugInfo{Event: event, startedAt: time.Now()}
}

func (d *DebugInfo) Elapse() {
	d.Timing = time.Since(d.startedAt).Milliseconds()
}

func (d *DebugInfo) AddOption(key string, value string) {
	if d.Options == nil {
		d.Options = make(map[string]string)
	}
	d.Options[key] = value
}
