package location

import "fmt"

// Photo is an Airtable attachment on a venue record.
type Photo struct {
	URL      string
	Filename string
	Size     int64
	Type     string
}

// Location is one row of the Airtable "Lokacije" table.
type Location struct {
	ID                string
	VenueName         string
	Address           string
	Capacity          int
	Facilities        []string
	Photo             []Photo
	MatchesHosted     []string
	TournamentsHosted []string
	Sport             []string
}

func (l Location) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("location id is required")
	}
	if l.VenueName == "" {
		return fmt.Errorf("location venue name is required")
	}

	return nil
}

// Draft carries the writable venue fields.
type Draft struct {
	VenueName         string
	Address           string
	Capacity          int
	Facilities        []string
	Photo             []Photo
	MatchesHosted     []string
	TournamentsHosted []string
	Sport             []string
}

func (d Draft) Validate() error {
	if d.VenueName == "" {
		return fmt.Errorf("location venue name is required")
	}
	if d.Address == "" {
		return fmt.Errorf("location address is required")
	}

	return nil
}
