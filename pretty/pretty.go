package pretty

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/tidwall/pretty"
)

// Writer uses json marshal to pretty output an object
func Writer(writer io.Writer, object interface{}) error {
	return PrefixWriter(writer, "", object)
}

// PrefixWriter uses json marshal to pretty output an object after a prefix
func PrefixWriter(writer io.Writer, prefix string, object interface{}) error {
	objectString, err := json.Marshal(object)
	if err != nil {
		return err
	}

	if prefix != "" {
		prefix += ": "
	}

	_, err = fmt.Fprintf(writer, "%s%s", prefix, pretty.Pretty(objectString))
	return err
}

// String returns the pretty json form of an object, for debug logs.
func String(object interface{}) string {
	var buf bytes.Buffer
	err := Writer(&buf, object)
	if err != nil {
		return fmt.Sprintf("%+v", object)
	}
	return buf.String()
}
