// ABOUTME: Profile editor: view/edit toggle, resume upload and one-shot save
// ABOUTME: Edits live in a buffer until save; cancel restores the committed copy

package flows

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/samber/oops"

	"github.com/careervista/careervista-cli/internal/client"
	"github.com/careervista/careervista-cli/internal/upload"
	"github.com/careervista/careervista-cli/internal/validate"
)

// Profile fields. Email is shown but never editable.
const (
	FieldUsername     validate.Field = "username"
	FieldFirstName    validate.Field = "firstName"
	FieldLastName     validate.Field = "lastName"
	FieldProfileEmail validate.Field = "email"
	FieldPhone        validate.Field = "phone"
	FieldAddress      validate.Field = "address"
	FieldGender       validate.Field = "gender"
	FieldResumeURL    validate.Field = "resumeUrl"
)

// ProfileFields lists the profile in display order.
var ProfileFields = []validate.Field{
	FieldUsername, FieldFirstName, FieldLastName, FieldProfileEmail,
	FieldPhone, FieldAddress, FieldGender, FieldResumeURL,
}

const (
	MsgProfileLoadFailed   = "Failed to fetch profile data"
	MsgProfileUpdateFailed = "Failed to update profile"
	MsgProfileUpdated      = "Profile updated successfully!"
	MsgResumeUploaded      = "Resume uploaded successfully!"
)

var (
	ErrNotEditing     = errors.New("profile is not in edit mode")
	ErrImmutableField = errors.New("field cannot be edited")
	ErrUnknownField   = errors.New("unknown profile field")
)

// ProfileAPI is the slice of the backend the editor calls.
type ProfileAPI interface {
	GetProfile(ctx context.Context, userID string) (*client.Profile, error)
	UpdateProfile(ctx context.Context, userID string, in client.ProfileUpdate) error
}

// ResumeUploader stores a resume on the asset host and returns its URL.
type ResumeUploader interface {
	Upload(ctx context.Context, filename string, data []byte, publicID string) (string, error)
}

// ProfileEditor holds the profile screen.
type ProfileEditor struct {
	formState
	api      ProfileAPI
	uploader ResumeUploader
	sess     SessionState
	now      func() time.Time

	userID    string
	committed client.Profile
	buffer    client.Profile
	loaded    bool
	editing   bool
	uploading bool
}

func NewProfileEditor(api ProfileAPI, uploader ResumeUploader, sess SessionState, logger *slog.Logger) *ProfileEditor {
	p := &ProfileEditor{api: api, uploader: uploader, sess: sess, now: time.Now}
	p.init(logger)
	return p
}

// Load fetches the profile for the session's identity. Without a usable
// session it navigates to login and makes no call.
func (p *ProfileEditor) Load(ctx context.Context, fx Effects) error {
	id, err := p.sess.Identity()
	if err != nil {
		fx.Navigate(RouteLogin)
		return err
	}

	p.mu.Lock()
	p.userID = id.UserID
	p.banner = ""
	p.mu.Unlock()

	prof, err := p.api.GetProfile(ctx, id.UserID)

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.banner = MsgProfileLoadFailed
		p.logger.Warn("profile fetch failed", "user_id", id.UserID, "error", err)
		return err
	}
	p.committed = *prof
	p.buffer = *prof
	p.loaded = true
	p.editing = false
	return nil
}

func (p *ProfileEditor) Loaded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loaded
}

func (p *ProfileEditor) Editing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.editing
}

func (p *ProfileEditor) Uploading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.uploading
}

// Profile returns what the screen shows: the buffer while editing, the
// committed copy otherwise.
func (p *ProfileEditor) Profile() client.Profile {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.editing {
		return p.buffer
	}
	return p.committed
}

// Committed returns the last saved or loaded profile.
func (p *ProfileEditor) Committed() client.Profile {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.committed
}

// Edit enters edit mode with a fresh buffer.
func (p *ProfileEditor) Edit() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.editing {
		return
	}
	p.editing = true
	p.buffer = p.committed
	p.errs = validate.Errors{}
	p.banner = ""
}

// Cancel leaves edit mode and throws the buffer away.
func (p *ProfileEditor) Cancel() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.editing = false
	p.buffer = p.committed
	p.errs = validate.Errors{}
	p.banner = ""
}

// SetField edits one buffered field.
func (p *ProfileEditor) SetField(field validate.Field, value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.editing {
		return oops.Code("PROFILE_NOT_EDITING").Wrap(ErrNotEditing)
	}
	target, err := p.field(field)
	if err != nil {
		return err
	}
	*target = value
	return nil
}

// field points at a buffered editable field. Caller holds mu.
func (p *ProfileEditor) field(field validate.Field) (*string, error) {
	switch field {
	case FieldUsername:
		return &p.buffer.Username, nil
	case FieldFirstName:
		return &p.buffer.FirstName, nil
	case FieldLastName:
		return &p.buffer.LastName, nil
	case FieldPhone:
		return &p.buffer.Phone, nil
	case FieldAddress:
		return &p.buffer.Address, nil
	case FieldGender:
		return &p.buffer.Gender, nil
	case FieldResumeURL:
		return &p.buffer.ResumeURL, nil
	case FieldProfileEmail:
		return nil, oops.Code("PROFILE_IMMUTABLE_FIELD").With("field", string(field)).Wrap(ErrImmutableField)
	}
	return nil, oops.Code("PROFILE_UNKNOWN_FIELD").With("field", string(field)).Wrap(ErrUnknownField)
}

// AttachResume checks a picked file, uploads it and merges the hosted URL
// into the buffer. Type and size are checked before any upload; each
// outcome replaces only the resume field's error.
func (p *ProfileEditor) AttachResume(ctx context.Context, filename string, data []byte, fx Effects) error {
	p.mu.Lock()
	if !p.editing {
		p.mu.Unlock()
		return oops.Code("PROFILE_NOT_EDITING").Wrap(ErrNotEditing)
	}
	if p.uploading {
		p.mu.Unlock()
		return ErrBusy
	}
	if msg := validate.ResumeFile(data); msg != "" {
		p.setResumeError(msg)
		p.mu.Unlock()
		return ErrInvalid
	}
	p.setResumeError("")
	p.uploading = true
	publicID := upload.ResumePublicID(p.userID, p.now())
	p.mu.Unlock()

	url, err := p.uploader.Upload(ctx, filename, data, publicID)

	p.mu.Lock()
	p.uploading = false
	if err != nil {
		p.setResumeError(validate.MsgResumeUpload)
		p.mu.Unlock()
		p.logger.Warn("resume upload failed", "public_id", publicID, "error", err)
		return err
	}
	if !p.editing {
		// Edit was cancelled while the upload ran.
		p.mu.Unlock()
		return nil
	}
	p.buffer.ResumeURL = url
	p.mu.Unlock()

	fx.Notify(Notice{Level: NoticeSuccess, Text: MsgResumeUploaded})
	return nil
}

// setResumeError rebuilds the error map with msg on the resume field and
// every other field untouched. Caller holds mu.
func (p *ProfileEditor) setResumeError(msg string) {
	next := p.errs.Clone()
	delete(next, validate.FieldResume)
	if msg != "" {
		next[validate.FieldResume] = msg
	}
	p.errs = next
}

// Submit sends every editable field in one update. On failure the buffer
// and edit mode stay; on success the buffer becomes the committed copy
// with no refetch.
func (p *ProfileEditor) Submit(ctx context.Context, fx Effects) error {
	p.mu.Lock()
	if !p.editing {
		p.mu.Unlock()
		return oops.Code("PROFILE_NOT_EDITING").Wrap(ErrNotEditing)
	}
	if p.uploading {
		p.mu.Unlock()
		return ErrBusy
	}
	if err := p.begin(); err != nil {
		p.mu.Unlock()
		return err
	}
	p.state = StateSubmitting
	userID := p.userID
	snapshot := p.buffer
	p.mu.Unlock()

	err := p.api.UpdateProfile(ctx, userID, snapshot.Update())

	p.mu.Lock()
	if err != nil {
		p.fail(err, MsgProfileUpdateFailed)
		p.mu.Unlock()
		p.logger.Warn("profile update failed", "user_id", userID, "error", err)
		return err
	}
	p.state = StateSucceeded
	p.committed = snapshot
	p.buffer = snapshot
	p.editing = false
	p.mu.Unlock()

	fx.Notify(Notice{Level: NoticeSuccess, Text: MsgProfileUpdated})
	return nil
}

// Completion is the share of profile fields that are filled, 0 to 100.
func (p *ProfileEditor) Completion() int {
	return Completion(p.Profile())
}

// Completion scores a profile by how many of its fields are non-empty.
func Completion(prof client.Profile) int {
	values := []string{
		prof.Username, prof.FirstName, prof.LastName, prof.Email,
		prof.Phone, prof.Address, prof.Gender, prof.ResumeURL,
	}
	filled := 0
	for _, v := range values {
		if v != "" {
			filled++
		}
	}
	return filled * 100 / len(values)
}

// FieldValue reads a field from prof by name.
func FieldValue(prof client.Profile, field validate.Field) string {
	switch field {
	case FieldUsername:
		return prof.Username
	case FieldFirstName:
		return prof.FirstName
	case FieldLastName:
		return prof.LastName
	case FieldProfileEmail:
		return prof.Email
	case FieldPhone:
		return prof.Phone
	case FieldAddress:
		return prof.Address
	case FieldGender:
		return prof.Gender
	case FieldResumeURL:
		return prof.ResumeURL
	}
	return ""
}
