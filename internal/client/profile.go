// ABOUTME: Profile fetch and update endpoints plus the profile wire type
// ABOUTME: Email is read-only and never sent back on update

package client

import (
	"context"
	"net/http"
	"net/url"
)

// Profile is the user profile as the backend returns it.
type Profile struct {
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Gender    string `json:"gender"`
	ResumeURL string `json:"resumeUrl"`
}

// ProfileUpdate is the body of PUT /user/profile/{userID}. It holds every
// editable field and nothing else.
type ProfileUpdate struct {
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Gender    string `json:"gender"`
	ResumeURL string `json:"resumeUrl"`
}

// Update returns the editable projection of p.
func (p Profile) Update() ProfileUpdate {
	return ProfileUpdate{
		Username:  p.Username,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Phone:     p.Phone,
		Address:   p.Address,
		Gender:    p.Gender,
		ResumeURL: p.ResumeURL,
	}
}

// GetProfile calls GET /user/profile/{userID}
func (c *Client) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	var p Profile
	if err := c.do(ctx, http.MethodGet, "/user/profile/"+url.PathEscape(userID), nil, &p, true); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProfile calls PUT /user/profile/{userID}
func (c *Client) UpdateProfile(ctx context.Context, userID string, in ProfileUpdate) error {
	return c.do(ctx, http.MethodPut, "/user/profile/"+url.PathEscape(userID), in, nil, true)
}
