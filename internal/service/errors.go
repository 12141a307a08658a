package service

import "errors"

// Not found
var (
	ErrUserNotFound         = errors.New("User not found")
	ErrMediaNotFound        = errors.New("Media not found")
	ErrCommentNotFound      = errors.New("Comment not found")
	ErrLibraryEntryNotFound = errors.New("Media not in library")
)

// Conflicts (uniqueness)
var (
	ErrEmailAlreadyExists    = errors.New("Email already in use")
	ErrNickNameAlreadyExists = errors.New("Nickname already in use")
	ErrMediaAlreadyExists    = errors.New("Media already exists")
	ErrAlreadyInLibrary      = errors.New("Media already in library")
)

// Permission
var (
	ErrNotMediaOwner       = errors.New("You are not authorized to update this media")
	ErrCannotDeleteMedia   = errors.New("You are not authorized to delete this media")
	ErrNotCommentAuthor    = errors.New("You are not authorized to update this comment")
	ErrCannotDeleteComment = errors.New("You are not authorized to delete this comment")
	ErrAdminOnly           = errors.New("Access denied. Admins only.")
	ErrPrivateLibrary      = errors.New("This user's library is private")
)

// Credentials
var (
	ErrIncorrectPassword = errors.New("Incorrect Password")
)

// IsNotFound reports whether err names a missing entity.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrMediaNotFound) ||
		errors.Is(err, ErrCommentNotFound) ||
		errors.Is(err, ErrLibraryEntryNotFound)
}

// IsConflict reports whether err is a uniqueness violation.
func IsConflict(err error) bool {
	return errors.Is(err, ErrEmailAlreadyExists) ||
		errors.Is(err, ErrNickNameAlreadyExists) ||
		errors.Is(err, ErrMediaAlreadyExists) ||
		errors.Is(err, ErrAlreadyInLibrary)
}

// IsForbidden reports whether err is a failed permission check.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrNotMediaOwner) ||
		errors.Is(err, ErrCannotDeleteMedia) ||
		errors.Is(err, ErrNotCommentAuthor) ||
		errors.Is(err, ErrCannotDeleteComment) ||
		errors.Is(err, ErrAdminOnly) ||
		errors.Is(err, ErrPrivateLibrary)
}
