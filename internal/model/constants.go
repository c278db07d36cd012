package model

// AccessLevel explicit authorization decision for a canvas/video operation.
// Every mutating operation resolves one of these before touching storage.
type AccessLevel string

const (
	AccessOwner     AccessLevel = "OWNER"      // authenticated owner of the video
	AccessTokenEdit AccessLevel = "TOKEN_EDIT" // share-token holder with edit enabled
	AccessReadOnly  AccessLevel = "READ_ONLY"  // share-token holder, view only
	AccessDenied    AccessLevel = "DENIED"
)

// String 메서드
func (a AccessLevel) String() string {
	return string(a)
}

// CanView reports whether the level grants read access.
func (a AccessLevel) CanView() bool {
	return a != AccessDenied
}

// CanEdit reports whether the level grants write access.
func (a AccessLevel) CanEdit() bool {
	return a == AccessOwner || a == AccessTokenEdit
}

// LogAction 활동 로그 액션
type LogAction string

const (
	LogCreateNote  LogAction = "CREATE_NOTE"
	LogUpdateNote  LogAction = "UPDATE_NOTE"
	LogDeleteNote  LogAction = "DELETE_NOTE"
	LogSaveCanvas  LogAction = "SAVE_CANVAS"
	LogCreateLink  LogAction = "CREATE_LINK"
	LogDeleteVideo LogAction = "DELETE_VIDEO"
)

func (a LogAction) String() string {
	return string(a)
}
