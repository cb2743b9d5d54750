package revert

import (
	"fmt"
	"io"

	"github.com/ejoffe/revert/pretty"
	"gopkg.in/yaml.v3"
)

// WriteSession writes a finished session to w as "json" or "yaml".
func WriteSession(w io.Writer, s *Session, format string) error {
	switch format {
	case "json":
		return pretty.Writer(w, s)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		err := encoder.Encode(s)
		if err != nil {
			return err
		}
		return encoder.Close()
	}
	return fmt.Errorf("unknown report format %q", format)
}
