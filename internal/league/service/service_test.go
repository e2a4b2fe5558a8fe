package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	invitationModel "github.com/leaguehq/league-service/internal/invitation/model"
	"github.com/leaguehq/league-service/internal/invitation/policy"
	invitationRepo "github.com/leaguehq/league-service/internal/invitation/repository"
	leagueModel "github.com/leaguehq/league-service/internal/league/model"
	leagueRepo "github.com/leaguehq/league-service/internal/league/repository"
)

type testLeague struct {
	ID        string    `gorm:"primaryKey;column:id"`
	Name      string    `gorm:"column:name;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (testLeague) TableName() string { return "leagues" }

type testInvitation struct {
	ID        string    `gorm:"primaryKey;column:id"`
	LeagueID  string    `gorm:"column:league_id;not null"`
	Email     string    `gorm:"column:email;not null"`
	UserID    *string   `gorm:"column:user_id"`
	Role      string    `gorm:"column:role;not null"`
	Status    string    `gorm:"column:status;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (testInvitation) TableName() string { return "invitations" }

type stubDirectory struct {
	users map[string]string
}

func (d stubDirectory) ResolveEmail(_ context.Context, email string) (string, error) {
	return d.users[strings.ToLower(email)], nil
}

func setupService(t *testing.T) (Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&testLeague{}, &testInvitation{}))
	require.NoError(t, db.Exec(`CREATE UNIQUE INDEX uq_invitations_active
		ON invitations (league_id, email)
		WHERE status IN ('pending', 'accepted')`).Error)

	directory := stubDirectory{users: map[string]string{
		"alice@x.com": "u-alice",
		"bob@x.com":   "u-bob",
		"carol@x.com": "u-carol",
	}}

	svc := New(leagueRepo.New(db), invitationRepo.New(db), directory, db, zap.NewNop().Sugar())
	return svc, db
}

var (
	alice = invitationModel.Identity{UserID: "u-alice", Email: "alice@x.com"}
	bob   = invitationModel.Identity{UserID: "u-bob", Email: "bob@x.com"}
	dave  = invitationModel.Identity{Email: "dave@x.com"} // never registered
)

func TestService_CreateLeague(t *testing.T) {
	ctx := context.Background()

	t.Run("founder invariant", func(t *testing.T) {
		svc, _ := setupService(t)

		resp, err := svc.CreateLeague(ctx, alice, &leagueModel.CreateLeagueRequest{Name: "Keepers"})

		require.NoError(t, err)
		assert.Equal(t, "Keepers", resp.League.Name)
		require.Len(t, resp.Invitations, 1)
		founder := resp.Invitations[0]
		assert.Equal(t, "alice@x.com", founder.Email)
		assert.Equal(t, invitationModel.RoleAdmin, founder.Role)
		assert.Equal(t, invitationModel.StatusAccepted, founder.Status)
		require.NotNil(t, founder.UserID)
		assert.Equal(t, "u-alice", *founder.UserID)
		require.Len(t, resp.Members, 1)
		assert.Equal(t, "u-alice", resp.Members[0].UserID)
	})

	t.Run("invitees resolved best-effort", func(t *testing.T) {
		svc, _ := setupService(t)

		resp, err := svc.CreateLeague(ctx, alice, &leagueModel.CreateLeagueRequest{
			Name: "Keepers",
			Invitations: []leagueModel.InviteInput{
				{Email: "bob@x.com", Role: "Member"},
				{Email: "unregistered@x.com", Role: "Admin"},
			},
		})

		require.NoError(t, err)
		require.Len(t, resp.Invitations, 3)

		byEmail := make(map[string]invitationModel.Invitation)
		for _, inv := range resp.Invitations {
			byEmail[inv.Email] = inv
		}

		bobInv := byEmail["bob@x.com"]
		assert.Equal(t, invitationModel.StatusPending, bobInv.Status)
		require.NotNil(t, bobInv.UserID)
		assert.Equal(t, "u-bob", *bobInv.UserID)

		unresolved := byEmail["unregistered@x.com"]
		assert.Equal(t, invitationModel.StatusPending, unresolved.Status)
		assert.Nil(t, unresolved.UserID, "unknown email stays unbound")

		// Pending invitees are not members yet.
		assert.Len(t, resp.Members, 1)
	})

	t.Run("duplicate invitee skipped, not fatal", func(t *testing.T) {
		svc, _ := setupService(t)

		resp, err := svc.CreateLeague(ctx, alice, &leagueModel.CreateLeagueRequest{
			Name: "Keepers",
			Invitations: []leagueModel.InviteInput{
				{Email: "bob@x.com", Role: "Member"},
				{Email: "Bob@X.com", Role: "Admin"},
			},
		})

		require.NoError(t, err)
		assert.Len(t, resp.Invitations, 2, "founder plus one bob invitation")
	})

	t.Run("empty name", func(t *testing.T) {
		svc, _ := setupService(t)

		resp, err := svc.CreateLeague(ctx, alice, &leagueModel.CreateLeagueRequest{Name: ""})

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, leagueModel.ErrInvalidLeagueName)
	})

	t.Run("invalid invitee role fails before any write", func(t *testing.T) {
		svc, db := setupService(t)

		resp, err := svc.CreateLeague(ctx, alice, &leagueModel.CreateLeagueRequest{
			Name: "Keepers",
			Invitations: []leagueModel.InviteInput{
				{Email: "bob@x.com", Role: "Owner"},
			},
		})

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, invitationModel.ErrInvalidRole)

		var count int64
		db.Table("leagues").Count(&count)
		assert.Zero(t, count)
	})
}

func TestService_Invite(t *testing.T) {
	ctx := context.Background()

	t.Run("admin invites", func(t *testing.T) {
		svc, _ := setupService(t)
		league := mustCreateLeague(t, svc, alice, "Keepers")

		inv, err := svc.Invite(ctx, alice, league.ID, &leagueModel.InviteRequest{Email: "bob@x.com", Role: "Member"})

		require.NoError(t, err)
		assert.Equal(t, invitationModel.StatusPending, inv.Status)
		require.NotNil(t, inv.UserID)
		assert.Equal(t, "u-bob", *inv.UserID)
	})

	t.Run("non-member cannot invite", func(t *testing.T) {
		svc, _ := setupService(t)
		league := mustCreateLeague(t, svc, alice, "Keepers")

		inv, err := svc.Invite(ctx, bob, league.ID, &leagueModel.InviteRequest{Email: "carol@x.com", Role: "Member"})

		assert.Nil(t, inv)
		assert.ErrorIs(t, err, leagueModel.ErrNotAdmin)
	})

	t.Run("accepted member without admin role cannot invite", func(t *testing.T) {
		svc, _ := setupService(t)
		league := mustCreateLeague(t, svc, alice, "Keepers",
			leagueModel.InviteInput{Email: "bob@x.com", Role: "Member"})
		_, err := svc.Join(ctx, bob, league.ID)
		require.NoError(t, err)

		inv, err := svc.Invite(ctx, bob, league.ID, &leagueModel.InviteRequest{Email: "carol@x.com", Role: "Member"})

		assert.Nil(t, inv)
		assert.ErrorIs(t, err, leagueModel.ErrNotAdmin)
	})

	t.Run("duplicate pending invitation rejected", func(t *testing.T) {
		svc, _ := setupService(t)
		league := mustCreateLeague(t, svc, alice, "Keepers",
			leagueModel.InviteInput{Email: "bob@x.com", Role: "Member"})

		inv, err := svc.Invite(ctx, alice, league.ID, &leagueModel.InviteRequest{Email: "bob@x.com", Role: "Member"})

		assert.Nil(t, inv)
		assert.ErrorIs(t, err, invitationModel.ErrDuplicateInvitation)
	})

	t.Run("unknown league", func(t *testing.T) {
		svc, _ := setupService(t)

		inv, err := svc.Invite(ctx, alice, "missing", &leagueModel.InviteRequest{Email: "bob@x.com", Role: "Member"})

		assert.Nil(t, inv)
		assert.ErrorIs(t, err, leagueModel.ErrLeagueNotFound)
	})
}

func TestService_Join(t *testing.T) {
	ctx := context.Background()

	t.Run("roster derivation after join", func(t *testing.T) {
		svc, _ := setupService(t)
		league := mustCreateLeague(t, svc, invitationModel.Identity{UserID: "u-carol", Email: "carol@x.com"}, "L",
			leagueModel.InviteInput{Email: "dave@x.com", Role: "Member"})

		resp, err := svc.Join(ctx, dave, league.ID)
		require.NoError(t, err)
		assert.Len(t, resp.Members, 2)

		leagues, err := svc.ListLeaguesForUser(ctx, dave, "accepted")
		require.NoError(t, err)
		require.Len(t, leagues, 1)
		assert.Equal(t, "L", leagues[0].Name)

		assert.True(t, policy.IsMember(resp.Invitations, dave))
		assert.False(t, policy.IsAdmin(resp.Invitations, dave))
	})

	t.Run("no pending invitation", func(t *testing.T) {
		svc, _ := setupService(t)
		league := mustCreateLeague(t, svc, alice, "Keepers")

		resp, err := svc.Join(ctx, bob, league.ID)

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, invitationModel.ErrNoPendingInvitation)
	})

	t.Run("second join rejected cleanly", func(t *testing.T) {
		svc, _ := setupService(t)
		league := mustCreateLeague(t, svc, alice, "Keepers",
			leagueModel.InviteInput{Email: "bob@x.com", Role: "Member"})

		_, err := svc.Join(ctx, bob, league.ID)
		require.NoError(t, err)

		resp, err := svc.Join(ctx, bob, league.ID)
		assert.Nil(t, resp)
		assert.ErrorIs(t, err, invitationModel.ErrNoPendingInvitation)
	})

	t.Run("unknown league", func(t *testing.T) {
		svc, _ := setupService(t)

		resp, err := svc.Join(ctx, bob, "missing")

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, leagueModel.ErrLeagueNotFound)
	})
}

func TestService_Decline(t *testing.T) {
	ctx := context.Background()

	t.Run("decline leaves roster unchanged", func(t *testing.T) {
		svc, _ := setupService(t)
		league := mustCreateLeague(t, svc, alice, "Keepers",
			leagueModel.InviteInput{Email: "bob@x.com", Role: "Member"})

		inv, err := svc.Decline(ctx, bob, league.ID)

		require.NoError(t, err)
		assert.Equal(t, invitationModel.StatusDeclined, inv.Status)

		resp, err := svc.GetLeague(ctx, alice, league.ID)
		require.NoError(t, err)
		assert.Len(t, resp.Members, 1, "only the founder")
	})

	t.Run("second decline fails with no pending invitation", func(t *testing.T) {
		svc, _ := setupService(t)
		league := mustCreateLeague(t, svc, alice, "Keepers",
			leagueModel.InviteInput{Email: "bob@x.com", Role: "Member"})

		_, err := svc.Decline(ctx, bob, league.ID)
		require.NoError(t, err)

		inv, err := svc.Decline(ctx, bob, league.ID)
		assert.Nil(t, inv)
		assert.ErrorIs(t, err, invitationModel.ErrNoPendingInvitation)

		// State unchanged from after the first decline.
		resp, err := svc.GetLeague(ctx, alice, league.ID)
		require.NoError(t, err)
		assert.Len(t, resp.Members, 1)
	})

	t.Run("join after decline finds nothing", func(t *testing.T) {
		svc, _ := setupService(t)
		league := mustCreateLeague(t, svc, alice, "Keepers",
			leagueModel.InviteInput{Email: "bob@x.com", Role: "Member"})

		_, err := svc.Decline(ctx, bob, league.ID)
		require.NoError(t, err)

		resp, err := svc.Join(ctx, bob, league.ID)
		assert.Nil(t, resp)
		assert.ErrorIs(t, err, invitationModel.ErrNoPendingInvitation)
	})
}

func TestService_UpdateLeague(t *testing.T) {
	ctx := context.Background()

	t.Run("rename and edit roles", func(t *testing.T) {
		svc, _ := setupService(t)
		league := mustCreateLeague(t, svc, alice, "Keepers",
			leagueModel.InviteInput{Email: "bob@x.com", Role: "Member"})
		_, err := svc.Join(ctx, bob, league.ID)
		require.NoError(t, err)

		resp, err := svc.UpdateLeague(ctx, alice, league.ID, &leagueModel.UpdateLeagueRequest{
			Name: "Dynasty Keepers",
			Invitations: []leagueModel.InviteInput{
				{Email: "bob@x.com", Role: "Admin"},
				{Email: "carol@x.com", Role: "Member"},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, "Dynasty Keepers", resp.League.Name)

		byEmail := make(map[string]invitationModel.Invitation)
		for _, inv := range resp.Invitations {
			byEmail[inv.Email] = inv
		}
		assert.Equal(t, invitationModel.RoleAdmin, byEmail["bob@x.com"].Role)
		assert.Equal(t, invitationModel.StatusAccepted, byEmail["bob@x.com"].Status)
		assert.Equal(t, invitationModel.StatusPending, byEmail["carol@x.com"].Status)

		// Bob's promotion is effective: he can now invite.
		_, err = svc.Invite(ctx, bob, league.ID, &leagueModel.InviteRequest{Email: "dave@x.com", Role: "Member"})
		assert.NoError(t, err)
	})

	t.Run("promoting a pending invitation grants nothing until accepted", func(t *testing.T) {
		svc, _ := setupService(t)
		league := mustCreateLeague(t, svc, alice, "Keepers",
			leagueModel.InviteInput{Email: "carol@x.com", Role: "Member"})

		_, err := svc.UpdateLeague(ctx, alice, league.ID, &leagueModel.UpdateLeagueRequest{
			Name: "Keepers",
			Invitations: []leagueModel.InviteInput{
				{Email: "carol@x.com", Role: "Admin"},
			},
		})
		require.NoError(t, err)

		carol := invitationModel.Identity{UserID: "u-carol", Email: "carol@x.com"}
		_, err = svc.Invite(ctx, carol, league.ID, &leagueModel.InviteRequest{Email: "dave@x.com", Role: "Member"})
		assert.ErrorIs(t, err, leagueModel.ErrNotAdmin)
	})

	t.Run("non-admin rejected", func(t *testing.T) {
		svc, _ := setupService(t)
		league := mustCreateLeague(t, svc, alice, "Keepers")

		resp, err := svc.UpdateLeague(ctx, bob, league.ID, &leagueModel.UpdateLeagueRequest{Name: "Taken"})

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, leagueModel.ErrNotAdmin)
	})

	t.Run("empty name rejected", func(t *testing.T) {
		svc, _ := setupService(t)
		league := mustCreateLeague(t, svc, alice, "Keepers")

		resp, err := svc.UpdateLeague(ctx, alice, league.ID, &leagueModel.UpdateLeagueRequest{Name: "  "})

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, leagueModel.ErrInvalidLeagueName)
	})
}

func TestService_ListLeaguesForUser(t *testing.T) {
	ctx := context.Background()

	t.Run("by status", func(t *testing.T) {
		svc, _ := setupService(t)
		accepted := mustCreateLeague(t, svc, alice, "Accepted League",
			leagueModel.InviteInput{Email: "bob@x.com", Role: "Member"})
		_, err := svc.Join(ctx, bob, accepted.ID)
		require.NoError(t, err)

		mustCreateLeague(t, svc, alice, "Pending League",
			leagueModel.InviteInput{Email: "bob@x.com", Role: "Member"})

		declined := mustCreateLeague(t, svc, alice, "Declined League",
			leagueModel.InviteInput{Email: "bob@x.com", Role: "Member"})
		_, err = svc.Decline(ctx, bob, declined.ID)
		require.NoError(t, err)

		got, err := svc.ListLeaguesForUser(ctx, bob, "accepted")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Accepted League", got[0].Name)

		got, err = svc.ListLeaguesForUser(ctx, bob, "pending")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Pending League", got[0].Name)

		got, err = svc.ListLeaguesForUser(ctx, bob, "declined")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Declined League", got[0].Name)
	})

	t.Run("creator sees own league as accepted", func(t *testing.T) {
		svc, _ := setupService(t)
		mustCreateLeague(t, svc, alice, "Keepers")

		got, err := svc.ListLeaguesForUser(ctx, alice, "accepted")

		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("invalid status", func(t *testing.T) {
		svc, _ := setupService(t)

		got, err := svc.ListLeaguesForUser(ctx, alice, "revoked")

		assert.Nil(t, got)
		assert.ErrorIs(t, err, invitationModel.ErrInvalidStatus)
	})
}

func TestService_GetLeague(t *testing.T) {
	ctx := context.Background()

	t.Run("member sees league", func(t *testing.T) {
		svc, _ := setupService(t)
		league := mustCreateLeague(t, svc, alice, "Keepers")

		resp, err := svc.GetLeague(ctx, alice, league.ID)

		require.NoError(t, err)
		assert.Equal(t, "Keepers", resp.League.Name)
	})

	t.Run("invitee sees league", func(t *testing.T) {
		svc, _ := setupService(t)
		league := mustCreateLeague(t, svc, alice, "Keepers",
			leagueModel.InviteInput{Email: "bob@x.com", Role: "Member"})

		resp, err := svc.GetLeague(ctx, bob, league.ID)

		require.NoError(t, err)
		assert.Len(t, resp.Invitations, 2)
	})

	t.Run("stranger rejected", func(t *testing.T) {
		svc, _ := setupService(t)
		league := mustCreateLeague(t, svc, alice, "Keepers")

		resp, err := svc.GetLeague(ctx, bob, league.ID)

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, leagueModel.ErrNotMember)
	})

	t.Run("unknown league", func(t *testing.T) {
		svc, _ := setupService(t)

		resp, err := svc.GetLeague(ctx, alice, "missing")

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, leagueModel.ErrLeagueNotFound)
	})
}

func TestService_PendingInvitations(t *testing.T) {
	ctx := context.Background()

	t.Run("feed lists pending only", func(t *testing.T) {
		svc, _ := setupService(t)
		one := mustCreateLeague(t, svc, alice, "One",
			leagueModel.InviteInput{Email: "bob@x.com", Role: "Member"})
		mustCreateLeague(t, svc, alice, "Two",
			leagueModel.InviteInput{Email: "bob@x.com", Role: "Member"})
		_, err := svc.Join(ctx, bob, one.ID)
		require.NoError(t, err)

		feed, err := svc.PendingInvitations(ctx, bob)

		require.NoError(t, err)
		require.Len(t, feed, 1)
		assert.Equal(t, "Two", feed[0].League.Name)
		assert.NotEmpty(t, feed[0].InvitationID)
	})

	t.Run("empty feed", func(t *testing.T) {
		svc, _ := setupService(t)

		feed, err := svc.PendingInvitations(ctx, bob)

		require.NoError(t, err)
		assert.Empty(t, feed)
	})
}

// mustCreateLeague is a test helper around CreateLeague.
func mustCreateLeague(
	t *testing.T,
	svc Service,
	creator invitationModel.Identity,
	name string,
	invitees ...leagueModel.InviteInput,
) leagueModel.League {
	t.Helper()
	resp, err := svc.CreateLeague(context.Background(), creator, &leagueModel.CreateLeagueRequest{
		Name:        name,
		Invitations: invitees,
	})
	require.NoError(t, err)
	return resp.League
}
