package service

import (
	"errors"

	"Supply_Library/internal/repository/mysql"
)

// 仓储层的冲突错误原样透传，handler 统一按这些哨兵做状态码映射
var (
	ErrNotAdmin          = errors.New("only community admins can perform this action")
	ErrAlreadyMember     = mysql.ErrAlreadyMember
	ErrInvitationPending = mysql.ErrInvitationPending
	ErrInvitationClosed  = mysql.ErrInvitationClosed
	ErrEmailMismatch     = mysql.ErrEmailMismatch
	ErrItemAlreadyShared = mysql.ErrItemAlreadyShared
	ErrNotFound          = mysql.ErrNotFound
)
