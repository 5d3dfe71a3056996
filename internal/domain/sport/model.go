package sport

import "fmt"

// Sport is one row of the Airtable "Sport" table.
type Sport struct {
	ID   string
	Name string
	Icon string
}

func (s Sport) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("sport id is required")
	}
	if s.Name == "" {
		return fmt.Errorf("sport name is required")
	}

	return nil
}
