package builtinhooks

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"os"
)

// checkXML rejects files that fail to parse as well-formed XML.
// check_xml.rs only counts '<'/'>' occurrences; this walks the token
// stream with the standard library's decoder instead, catching mismatched
// tags the original's counting approach misses.
type checkXML struct{}

func (checkXML) Run(ctx context.Context, files []string, args []string) error {
	for _, f := range files {
		file, err := os.Open(f)
		if err != nil {
			return err
		}
		dec := xml.NewDecoder(file)
		var decodeErr error
		for {
			if _, err := dec.Token(); err != nil {
				if err != io.EOF {
					decodeErr = err
				}
				break
			}
		}
		file.Close()
		if decodeErr != nil {
			return fmt.Errorf("invalid XML in %s: %w", f, decodeErr)
		}
	}
	return nil
}
