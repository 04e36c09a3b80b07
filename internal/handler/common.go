package handler // handler defines http handlers

import (
	"errors"  // errors provides the sentinel used in getUserID
	"strconv" // strconv converts strings to numeric types

	"github.com/labstack/echo/v4" // echo defines request context types
)

// getUserID extracts the user_id from echo.Context and converts it to
// uint64.  The JWT middleware stores the raw claim value, whose Go type
// depends on how the JSON number decoded, so every plausible shape is
// handled here.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// viewerID is like getUserID but tolerates anonymous requests: when no
// identity is present it returns 0, which downstream code treats as
// "not signed in".
func viewerID(c echo.Context) uint64 {
	id, err := getUserID(c)
	if err != nil {
		return 0
	}
	return id
}
