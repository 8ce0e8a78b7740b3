package batch

import (
	"fmt"
	"strings"
)

func ValidateBatch(b *Batch) error {
	if strings.TrimSpace(b.ID) == "" {
		return fmt.Errorf("batch id is required")
	}
	if len(b.Requests) == 0 {
		return fmt.Errorf("batch must include at least one request")
	}
	for idx := range b.Requests {
		if b.Request(idx).Len() == 0 {
			return fmt.Errorf("batch request %d: no parameters", idx+1)
		}
	}
	return nil
}
