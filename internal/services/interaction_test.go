package services

import (
	"testing"

	"vibelink-backend/internal/errs"
	"vibelink-backend/internal/game"
	"vibelink-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func newInteractionFixture(t *testing.T) (*gorm.DB, *InteractionService, *models.GameSession, []models.User) {
	t.Helper()

	db := newTestDB(t)
	sessions := NewSessionService(db)
	svc := NewInteractionService(db, sessions, NewScoringService())
	users := seedUsers(t, db, "ava", "ben", "cleo")

	session, err := sessions.Create(CreateSessionInput{
		ParticipantIDs: []int64{int64(users[0].ID), int64(users[1].ID)},
	})
	require.NoError(t, err)
	return db, svc, session, users
}

func TestSubmitResponseUpsert(t *testing.T) {
	db, svc, session, users := newInteractionFixture(t)

	first, err := svc.SubmitResponse(session.ID, users[0].ID, SubmitResponseInput{
		RoundNumber:  0,
		RoundType:    string(game.RoundQuestions),
		ResponseText: "pineapple on pizza, always",
	})
	require.NoError(t, err)
	assert.Greater(t, first.Score, 0)

	second, err := svc.SubmitResponse(session.ID, users[0].ID, SubmitResponseInput{
		RoundNumber:  0,
		RoundType:    string(game.RoundQuestions),
		ResponseText: "changed my mind",
		ResponseData: datatypes.JSON(`{"confidence":3}`),
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "changed my mind", second.ResponseText)

	var count int64
	require.NoError(t, db.Model(&models.RoundResponse{}).
		Where("session_id = ? AND user_id = ?", session.ID, users[0].ID).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// A different round number is a fresh row.
	_, err = svc.SubmitResponse(session.ID, users[0].ID, SubmitResponseInput{
		RoundNumber:  1,
		RoundType:    string(game.RoundSynergy),
		ResponseText: "team player",
	})
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.RoundResponse{}).
		Where("session_id = ? AND user_id = ?", session.ID, users[0].ID).
		Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestSubmitResponseRejections(t *testing.T) {
	db, svc, session, users := newInteractionFixture(t)

	_, err := svc.SubmitResponse(session.ID, users[0].ID, SubmitResponseInput{RoundNumber: -1, RoundType: "questions"})
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = svc.SubmitResponse(session.ID, users[0].ID, SubmitResponseInput{RoundNumber: 0})
	assert.ErrorIs(t, err, errs.ErrValidation)

	// cleo is not in the participant list.
	_, err = svc.SubmitResponse(session.ID, users[2].ID, SubmitResponseInput{
		RoundNumber: 0, RoundType: "questions", ResponseText: "hi",
	})
	assert.ErrorIs(t, err, errs.ErrNotParticipant)

	_, err = svc.SubmitResponse(999, users[0].ID, SubmitResponseInput{
		RoundNumber: 0, RoundType: "questions", ResponseText: "hi",
	})
	assert.ErrorIs(t, err, errs.ErrSessionNotFound)

	var count int64
	require.NoError(t, db.Model(&models.RoundResponse{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestPostAndListMessages(t *testing.T) {
	_, svc, session, users := newInteractionFixture(t)

	_, err := svc.PostMessage(session.ID, users[0].ID, "", "chat")
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = svc.PostMessage(session.ID, users[2].ID, "lurking", "chat")
	assert.ErrorIs(t, err, errs.ErrNotParticipant)

	for _, text := range []string{"hey", "ready?", "go"} {
		_, err = svc.PostMessage(session.ID, users[0].ID, text, "chat")
		require.NoError(t, err)
	}

	messages, err := svc.ListMessages(session.ID, 0)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, "hey", messages[0].Message)

	limited, err := svc.ListMessages(session.ID, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestVoteMeme(t *testing.T) {
	db, svc, session, users := newInteractionFixture(t)

	meme, err := svc.UploadMeme(session.ID, users[0].ID, "https://img.example/cat.png", "mood")
	require.NoError(t, err)
	assert.Zero(t, meme.VoteCount)

	voted, err := svc.VoteMeme(meme.ID, users[1].ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, voted.VoteCount)

	// Same voter again: the reaction is replaced, not added.
	voted, err = svc.VoteMeme(meme.ID, users[1].ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, voted.VoteCount)

	var reactions int64
	require.NoError(t, db.Model(&models.MemeReaction{}).
		Where("meme_id = ?", meme.ID).Count(&reactions).Error)
	assert.EqualValues(t, 1, reactions)

	voted, err = svc.VoteMeme(meme.ID, users[0].ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, voted.VoteCount)

	_, err = svc.VoteMeme(999, users[0].ID, 1)
	assert.ErrorIs(t, err, errs.ErrMemeNotFound)

	_, err = svc.VoteMeme(meme.ID, users[2].ID, 1)
	assert.ErrorIs(t, err, errs.ErrNotParticipant)
}

func TestListMemesOrdering(t *testing.T) {
	_, svc, session, users := newInteractionFixture(t)

	low, err := svc.UploadMeme(session.ID, users[0].ID, "https://img.example/a.png", "")
	require.NoError(t, err)
	high, err := svc.UploadMeme(session.ID, users[1].ID, "https://img.example/b.png", "")
	require.NoError(t, err)

	_, err = svc.VoteMeme(high.ID, users[0].ID, 1)
	require.NoError(t, err)
	_, err = svc.VoteMeme(high.ID, users[1].ID, 1)
	require.NoError(t, err)
	_, err = svc.VoteMeme(low.ID, users[0].ID, 1)
	require.NoError(t, err)

	memes, err := svc.ListMemes(session.ID)
	require.NoError(t, err)
	require.Len(t, memes, 2)
	assert.Equal(t, high.ID, memes[0].ID)
}

func TestAudienceVotesAccumulate(t *testing.T) {
	db, svc, session, users := newInteractionFixture(t)

	_, err := svc.CastAudienceVote(session.ID, users[0].ID, "funniest", users[1].ID, 0)
	require.NoError(t, err)
	_, err = svc.CastAudienceVote(session.ID, users[0].ID, "funniest", users[1].ID, 2)
	require.NoError(t, err)

	var votes []models.AudienceVote
	require.NoError(t, db.Where("session_id = ?", session.ID).Find(&votes).Error)
	require.Len(t, votes, 2)
	assert.Equal(t, 1, votes[0].Weight)
	assert.Equal(t, 2, votes[1].Weight)

	_, err = svc.CastAudienceVote(session.ID, users[0].ID, "", users[1].ID, 1)
	assert.ErrorIs(t, err, errs.ErrValidation)

	// Nominee must be in the session.
	_, err = svc.CastAudienceVote(session.ID, users[0].ID, "funniest", users[2].ID, 1)
	assert.ErrorIs(t, err, errs.ErrNotParticipant)

	_, err = svc.CastAudienceVote(session.ID, users[2].ID, "funniest", users[0].ID, 1)
	assert.ErrorIs(t, err, errs.ErrNotParticipant)
}

func TestRecordConnectionEvent(t *testing.T) {
	db, svc, session, users := newInteractionFixture(t)

	require.NoError(t, svc.RecordConnectionEvent(session.ID, users[0].ID, "conn-1", models.ConnectionEventJoined))
	require.NoError(t, svc.RecordConnectionEvent(session.ID, users[0].ID, "conn-1", models.ConnectionEventLeft))

	var events []models.ConnectionEvent
	require.NoError(t, db.Where("session_id = ?", session.ID).Order("id").Find(&events).Error)
	require.Len(t, events, 2)
	assert.Equal(t, models.ConnectionEventJoined, events[0].Event)
	assert.Equal(t, models.ConnectionEventLeft, events[1].Event)
}
