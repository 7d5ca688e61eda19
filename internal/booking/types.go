package booking

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Listing is one trek returned by GET /listings.
type Listing struct {
	ID       string       `json:"id"`
	Title    string       `json:"title"`
	Duration flexibleText `json:"duration"`
}

// SubmitResponse is the body of POST /trips/custom.
type SubmitResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// LoginResponse is the body of POST /auth/login.
type LoginResponse struct {
	Token     string
	UserName  string
	UserEmail string
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginData struct {
	Token string `json:"token"`
	User  struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"user"`
}

// flexibleText accepts a JSON string or number. Listings report duration
// both as 12 and as "12-14 days".
type flexibleText string

func (f *flexibleText) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexibleText(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	if i, err := n.Int64(); err == nil {
		*f = flexibleText(strconv.FormatInt(i, 10) + " days")
		return nil
	}
	*f = flexibleText(n.String())
	return nil
}

func (f flexibleText) String() string { return string(f) }
