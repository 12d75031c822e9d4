package http

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/fivetwenty-io/clientsuccess/pkg/clientsuccess"
)

// ExtractID returns the id carried by the last path segment of a Location
// header, for example 1300 for "/v1/clients/1300". The segment is always read
// as decimal.
func ExtractID(location string) (int, error) {
	path := strings.TrimSpace(location)
	if parsed, err := url.Parse(path); err == nil {
		path = parsed.Path
	}

	path = strings.TrimRight(path, "/")
	segment := path[strings.LastIndex(path, "/")+1:]

	id, err := strconv.Atoi(segment)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", clientsuccess.ErrInvalidLocation, location)
	}

	return id, nil
}
