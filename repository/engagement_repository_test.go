package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shuchit-srx/stoory-backend-sub003/enum"
	"github.com/shuchit-srx/stoory-backend-sub003/internal/testdb"
	"github.com/shuchit-srx/stoory-backend-sub003/repository"
	"gorm.io/gorm"
)

func TestResolveParticipants(t *testing.T) {
	db := testdb.Open(t)
	directory := repository.NewEngagementRepository(db)
	testdb.Engagement(t, db, "eng-1", "inf-1", "brand-1")

	got, err := directory.ResolveParticipants(context.Background(), "eng-1")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got.EngagementID != "eng-1" || got.InfluencerID != "inf-1" || got.BrandOwnerID != "brand-1" {
		t.Fatalf("participants = %+v", got)
	}

	_, err = directory.ResolveParticipants(context.Background(), "missing")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("err = %v, want ErrRecordNotFound", err)
	}
}

func TestListUserEngagements(t *testing.T) {
	db := testdb.Open(t)
	directory := repository.NewEngagementRepository(db)
	testdb.Engagement(t, db, "eng-1", "inf-1", "brand-1")
	testdb.Engagement(t, db, "eng-2", "inf-2", "brand-1")
	testdb.Engagement(t, db, "eng-3", "inf-1", "brand-2")

	tests := []struct {
		userID string
		want   int
	}{
		{userID: "inf-1", want: 2},
		{userID: "brand-1", want: 2},
		{userID: "inf-2", want: 1},
		{userID: "nobody", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.userID, func(t *testing.T) {
			got, err := directory.ListUserEngagements(context.Background(), tt.userID)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(got) != tt.want {
				t.Fatalf("engagements = %d, want %d", len(got), tt.want)
			}
			for _, p := range got {
				if !p.Includes(tt.userID) {
					t.Fatalf("%s is not a participant of %+v", tt.userID, p)
				}
			}
		})
	}
}

func TestIsPaymentVerified(t *testing.T) {
	db := testdb.Open(t)
	ledger := repository.NewPaymentRepository(db)

	testdb.DirectPayment(t, db, "direct-ok", enum.PaymentStatusVerified)
	testdb.DirectPayment(t, db, "direct-pending", enum.PaymentStatusPending)
	testdb.BulkPayment(t, db, enum.PaymentStatusVerified, "bulk-1", "bulk-2")
	testdb.BulkPayment(t, db, enum.PaymentStatusFailed, "bulk-failed")

	tests := []struct {
		engagementID string
		want         bool
	}{
		{engagementID: "direct-ok", want: true},
		{engagementID: "direct-pending", want: false},
		{engagementID: "bulk-1", want: true},
		{engagementID: "bulk-2", want: true},
		{engagementID: "bulk-failed", want: false},
		{engagementID: "unpaid", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.engagementID, func(t *testing.T) {
			got, err := ledger.IsPaymentVerified(context.Background(), tt.engagementID)
			if err != nil {
				t.Fatalf("verify: %v", err)
			}
			if got != tt.want {
				t.Fatalf("verified = %v, want %v", got, tt.want)
			}
		})
	}
}
