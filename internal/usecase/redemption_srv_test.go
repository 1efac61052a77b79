package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"event-ticketing/internal/dto/response"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func issueTestTicket(t *testing.T, repo *fakeTicketRepo) string {
	t.Helper()
	svc := newTestTicketService(repo, &fakeRenderer{}, &fakeMailer{})
	resp, err := svc.IssueTicket(context.Background(), validRequest())
	require.NoError(t, err)
	return resp.TicketUID
}

func TestRedeem_FirstScanAdmitsThenAlwaysAlreadyUsed(t *testing.T) {
	repo := newFakeTicketRepo()
	uid := issueTestTicket(t, repo)
	svc := NewRedemptionService(repo, zap.NewNop())

	first, err := svc.Redeem(context.Background(), uid)
	require.NoError(t, err)
	assert.Equal(t, response.RedemptionStatusRedeemed, first.Status)
	assert.True(t, first.Success)
	assert.Equal(t, "ticket valid, admit", first.Message)

	// Every later presentation of the same ticket stays rejected.
	for i := 0; i < 5; i++ {
		again, err := svc.Redeem(context.Background(), uid)
		require.NoError(t, err)
		assert.Equal(t, response.RedemptionStatusAlreadyRedeemed, again.Status)
		assert.False(t, again.Success)
		assert.Equal(t, "ticket already used", again.Message)
	}
}

func TestRedeem_UnknownTicketNeverMutates(t *testing.T) {
	repo := newFakeTicketRepo()
	uid := issueTestTicket(t, repo)
	svc := NewRedemptionService(repo, zap.NewNop())

	res, err := svc.Redeem(context.Background(), "not-a-real-uid")
	require.NoError(t, err)
	assert.Equal(t, response.RedemptionStatusNotFound, res.Status)
	assert.False(t, res.Success)
	assert.Equal(t, "ticket does not exist", res.Message)

	// The issued ticket is untouched and still redeemable.
	stored, err := repo.FindByUID(context.Background(), uid)
	require.NoError(t, err)
	assert.False(t, stored.Redeemed)
}

func TestRedeem_TrimsScannedPayload(t *testing.T) {
	repo := newFakeTicketRepo()
	uid := issueTestTicket(t, repo)
	svc := NewRedemptionService(repo, zap.NewNop())

	res, err := svc.Redeem(context.Background(), "  "+uid+"\n")
	require.NoError(t, err)
	assert.Equal(t, response.RedemptionStatusRedeemed, res.Status)
	assert.Equal(t, uid, res.TicketUID)
}

func TestRedeem_StoreErrorPropagates(t *testing.T) {
	repo := newFakeTicketRepo()
	repo.markErr = errors.New("connection reset")
	svc := NewRedemptionService(repo, zap.NewNop())

	_, err := svc.Redeem(context.Background(), "anything")
	require.Error(t, err)
}

func TestRedeem_ConcurrentScansAdmitExactlyOnce(t *testing.T) {
	const scanners = 50

	repo := newFakeTicketRepo()
	uid := issueTestTicket(t, repo)
	svc := NewRedemptionService(repo, zap.NewNop())

	results := make([]*response.RedemptionResponse, scanners)
	errs := make([]error, scanners)
	var wg sync.WaitGroup
	start := make(chan struct{})

	for i := 0; i < scanners; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			results[i], errs[i] = svc.Redeem(context.Background(), uid)
		}(i)
	}

	close(start)
	wg.Wait()

	redeemed, already := 0, 0
	for i, res := range results {
		require.NoError(t, errs[i])
		switch res.Status {
		case response.RedemptionStatusRedeemed:
			redeemed++
		case response.RedemptionStatusAlreadyRedeemed:
			already++
		default:
			t.Fatalf("unexpected status %q", res.Status)
		}
	}

	assert.Equal(t, 1, redeemed, "exactly one scanner may admit")
	assert.Equal(t, scanners-1, already)
}
