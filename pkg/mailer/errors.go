package mailer

import "errors"

// Failure messages surfaced through Result.Error.
const (
	MsgCredentialsMissing = "Email credentials not configured"
	MsgUnknownError       = "Unknown error occurred"
)

var (
	// ErrCredentialsMissing indicates the transport user or secret is empty.
	ErrCredentialsMissing = errors.New(MsgCredentialsMissing)

	// ErrNoRecipient indicates no recipient was specified.
	ErrNoRecipient = errors.New("email must have at least one recipient")

	// ErrNoContent indicates neither HTML nor text content was provided.
	ErrNoContent = errors.New("email must have content")

	// ErrTemplateNotFound indicates the template file was not found.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrLayoutNotFound indicates the layout file was not found.
	ErrLayoutNotFound = errors.New("layout not found")

	// ErrRenderFailed indicates template rendering failed.
	ErrRenderFailed = errors.New("failed to render template")

	// ErrInvalidFrontmatter indicates invalid YAML frontmatter.
	ErrInvalidFrontmatter = errors.New("invalid frontmatter")

	// ErrNoTransport indicates the mailer was built without a transport factory.
	ErrNoTransport = errors.New("no transport configured")
)
