package ibt

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Session is the subset of the session info document most tools need. Fields missing from the
// document are left zero; unknown keys are ignored.
type Session struct {
	WeekendInfo WeekendInfo `yaml:"WeekendInfo"`
	SessionInfo struct {
		Sessions []SessionEntry `yaml:"Sessions"`
	} `yaml:"SessionInfo"`
	DriverInfo DriverInfo `yaml:"DriverInfo"`
}

// WeekendInfo describes the track and event.
type WeekendInfo struct {
	TrackName        string `yaml:"TrackName"`
	TrackID          int    `yaml:"TrackID"`
	TrackLength      string `yaml:"TrackLength"`
	TrackDisplayName string `yaml:"TrackDisplayName"`
	TrackCity        string `yaml:"TrackCity"`
	TrackCountry     string `yaml:"TrackCountry"`
	SeriesID         int    `yaml:"SeriesID"`
	SeasonID         int    `yaml:"SeasonID"`
	SessionID        int    `yaml:"SessionID"`
	SubSessionID     int    `yaml:"SubSessionID"`
	Category         string `yaml:"Category"`
	EventType        string `yaml:"EventType"`
	NumCarTypes      int    `yaml:"NumCarTypes"`
}

// SessionEntry is one practice, qualifying or race session of the event.
type SessionEntry struct {
	SessionNum  int    `yaml:"SessionNum"`
	SessionLaps string `yaml:"SessionLaps"`
	SessionTime string `yaml:"SessionTime"`
	SessionType string `yaml:"SessionType"`
	SessionName string `yaml:"SessionName"`
}

// DriverInfo lists the cars in the session.
type DriverInfo struct {
	DriverCarIdx int      `yaml:"DriverCarIdx"`
	DriverUserID int      `yaml:"DriverUserID"`
	Drivers      []Driver `yaml:"Drivers"`
}

// Driver is one entry of DriverInfo.Drivers.
type Driver struct {
	CarIdx        int    `yaml:"CarIdx"`
	UserName      string `yaml:"UserName"`
	UserID        int    `yaml:"UserID"`
	TeamName      string `yaml:"TeamName"`
	CarNumber     string `yaml:"CarNumber"`
	CarScreenName string `yaml:"CarScreenName"`
	IRating       int    `yaml:"IRating"`
	IsSpectator   int    `yaml:"IsSpectator"`
}

// Driver returns the driver in car idx.
func (d *DriverInfo) Driver(idx int) (Driver, bool) {
	for _, drv := range d.Drivers {
		if drv.CarIdx == idx {
			return drv, true
		}
	}

	return Driver{}, false
}

// ParseSession decodes a session info document.
func ParseSession(info string) (*Session, error) {
	var s Session
	if err := yaml.Unmarshal([]byte(info), &s); err != nil {
		return nil, fmt.Errorf("failed to decode session info: %w", err)
	}

	return &s, nil
}
