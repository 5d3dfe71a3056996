package memory

import "fmt"

func errRecordMissing(kind, id string) error {
	return fmt.Errorf("%s record %s does not exist", kind, id)
}
