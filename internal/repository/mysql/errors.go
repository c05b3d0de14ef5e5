package mysql

import "errors"

// 冲突与授权类错误，由仓储在事务内检查后返回，service 原样透传
var (
	ErrAlreadyMember     = errors.New("user is already a member of this community")
	ErrInvitationPending = errors.New("a pending invitation for this email already exists")
	ErrInvitationClosed  = errors.New("invitation is no longer pending")
	ErrEmailMismatch     = errors.New("invitation was addressed to a different email")
	ErrItemAlreadyShared = errors.New("item is already in this community")
	ErrNotFound          = errors.New("record not found")
)
