package service

import (
	"Supply_Library/internal/model"
	"Supply_Library/internal/pkg"
	"Supply_Library/internal/repository/mysql"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// InvitationMailer 邀请通知的发信口，测试里用桩替换
type InvitationMailer interface {
	SendInvitation(to, communityName, inviterName string) error
}

type InvitationService struct {
	repo          *mysql.InvitationRepository
	memberRepo    *mysql.CommunityMemberRepository
	profileRepo   *mysql.ProfileRepository
	communityRepo *mysql.CommunityRepository
	mailer        InvitationMailer // nil 时不发通知
	log           *zap.Logger
}

// InvitationView 邀请行加上展示用的社区与邀请人信息
type InvitationView struct {
	model.CommunityInvitation
	Community *model.Community `json:"community,omitempty"`
	Inviter   *model.Profile   `json:"inviter,omitempty"`
}

func NewInvitationService(db *gorm.DB, mailer InvitationMailer, log *zap.Logger) *InvitationService {
	if log == nil {
		log = zap.NewNop()
	}
	return &InvitationService{
		repo:          &mysql.InvitationRepository{DB: db},
		memberRepo:    &mysql.CommunityMemberRepository{DB: db},
		profileRepo:   &mysql.ProfileRepository{DB: db},
		communityRepo: &mysql.CommunityRepository{DB: db},
		mailer:        mailer,
		log:           log,
	}
}

// Invite 管理员闸门在事务外，成员/重复邀请闸门在仓储事务内。
// 通知邮件尽力而为，失败只记日志不回滚。
func (s *InvitationService) Invite(communityID, inviterID uint64, email string) (*model.CommunityInvitation, error) {
	admin, err := s.memberRepo.IsAdmin(communityID, inviterID)
	if err != nil {
		return nil, err
	}
	if !admin {
		return nil, ErrNotAdmin
	}

	inv := &model.CommunityInvitation{
		CommunityID: communityID,
		InviterID:   inviterID,
		Email:       email,
	}
	if err := s.repo.Create(inv); err != nil {
		return nil, err
	}
	pkg.IncInvitation("created")

	if s.mailer != nil {
		community, cerr := s.communityRepo.FindByID(communityID)
		inviter, perr := s.profileRepo.FindByUserID(inviterID)
		if cerr == nil && perr == nil {
			if merr := s.mailer.SendInvitation(email, community.Name, inviter.Username); merr != nil {
				s.log.Warn("invitation email failed",
					zap.Uint64("community_id", communityID),
					zap.String("email", email),
					zap.Error(merr))
			}
		}
	}
	return inv, nil
}

// CommunityInvitations 管理员可见，包含全部状态
func (s *InvitationService) CommunityInvitations(communityID, userID uint64) ([]InvitationView, error) {
	admin, err := s.memberRepo.IsAdmin(communityID, userID)
	if err != nil {
		return nil, err
	}
	if !admin {
		return nil, ErrNotAdmin
	}

	rows, err := s.repo.ListByCommunity(communityID)
	if err != nil {
		return nil, err
	}
	return s.buildViews(rows, false)
}

// UserInvitations 某邮箱收到的 pending 邀请，带社区和邀请人
func (s *InvitationService) UserInvitations(email string) ([]InvitationView, error) {
	rows, err := s.repo.ListPendingByEmail(email)
	if err != nil {
		return nil, err
	}
	return s.buildViews(rows, true)
}

// Respond 响应者的 profile 邮箱必须和邀请邮箱一致
func (s *InvitationService) Respond(invitationID, userID uint64, accept bool) (*model.CommunityInvitation, error) {
	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}

	inv, err := s.repo.Respond(invitationID, profile, accept)
	if err != nil {
		return nil, err
	}
	if accept {
		pkg.IncInvitation("accepted")
		pkg.IncMemberJoined()
	} else {
		pkg.IncInvitation("declined")
	}
	return inv, nil
}

func (s *InvitationService) buildViews(rows []model.CommunityInvitation, withCommunity bool) ([]InvitationView, error) {
	inviterIDs := make([]uint64, 0, len(rows))
	communityIDs := make([]uint64, 0, len(rows))
	for _, inv := range rows {
		inviterIDs = append(inviterIDs, inv.InviterID)
		communityIDs = append(communityIDs, inv.CommunityID)
	}

	profiles, err := s.profileRepo.FindByUserIDs(inviterIDs)
	if err != nil {
		return nil, err
	}
	profileByID := make(map[uint64]*model.Profile, len(profiles))
	for i := range profiles {
		profileByID[profiles[i].UserID] = &profiles[i]
	}

	var communityByID map[uint64]*model.Community
	if withCommunity {
		communities, err := s.communityRepo.FindByIDs(communityIDs)
		if err != nil {
			return nil, err
		}
		communityByID = make(map[uint64]*model.Community, len(communities))
		for i := range communities {
			communityByID[communities[i].ID] = &communities[i]
		}
	}

	views := make([]InvitationView, 0, len(rows))
	for _, inv := range rows {
		v := InvitationView{
			CommunityInvitation: inv,
			Inviter:             profileByID[inv.InviterID],
		}
		if withCommunity {
			v.Community = communityByID[inv.CommunityID]
		}
		views = append(views, v)
	}
	return views, nil
}
