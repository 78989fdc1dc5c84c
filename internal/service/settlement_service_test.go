package service

import (
	"context"
	"errors"
	"testing"

	"github.com/splitr-app/splitr/internal/events"
	"github.com/splitr-app/splitr/internal/models"
	"github.com/splitr-app/splitr/internal/storage"
)

func TestCreateSettlement(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		creatorID string
		input     CreateSettlementInput
		wantErr   error
	}{
		{
			name:      "valid settlement by payer",
			creatorID: "bob",
			input: CreateSettlementInput{
				PaidByUserID:     "bob",
				ReceivedByUserID: "alice",
				Amount:           20.0,
				Note:             "venmo",
			},
		},
		{
			name:      "valid settlement by receiver",
			creatorID: "alice",
			input: CreateSettlementInput{
				PaidByUserID:     "bob",
				ReceivedByUserID: "alice",
				Amount:           20.0,
			},
		},
		{
			name:      "valid group settlement",
			creatorID: "bob",
			input: CreateSettlementInput{
				PaidByUserID:     "bob",
				ReceivedByUserID: "alice",
				Amount:           5.0,
				GroupID:          "grp",
			},
		},
		{
			name:      "zero amount rejected",
			creatorID: "bob",
			input: CreateSettlementInput{
				PaidByUserID:     "bob",
				ReceivedByUserID: "alice",
				Amount:           0,
			},
			wantErr: ErrInvalidInput,
		},
		{
			name:      "same payer and receiver rejected",
			creatorID: "bob",
			input: CreateSettlementInput{
				PaidByUserID:     "bob",
				ReceivedByUserID: "bob",
				Amount:           5.0,
			},
			wantErr: ErrInvalidInput,
		},
		{
			name:      "third party cannot record",
			creatorID: "carol",
			input: CreateSettlementInput{
				PaidByUserID:     "bob",
				ReceivedByUserID: "alice",
				Amount:           5.0,
			},
			wantErr: ErrInvalidInput,
		},
		{
			name:      "unknown party rejected",
			creatorID: "bob",
			input: CreateSettlementInput{
				PaidByUserID:     "bob",
				ReceivedByUserID: "ghost",
				Amount:           5.0,
			},
			wantErr: storage.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := expenseTestStore()
			pub := &recordingPublisher{}
			svc := NewSettlementService(store, pub)

			settlement, err := svc.CreateSettlement(ctx, tt.creatorID, tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("CreateSettlement failed: %v", err)
			}
			if settlement.ID == "" {
				t.Error("expected settlement ID to be generated")
			}
			if settlement.CreatedBy != tt.creatorID {
				t.Errorf("CreatedBy = %s, want %s", settlement.CreatedBy, tt.creatorID)
			}
			if len(pub.keys) != 1 || pub.keys[0] != events.KeySettlementRecorded {
				t.Errorf("published keys = %v, want [%s]", pub.keys, events.KeySettlementRecorded)
			}
		})
	}
}

func TestCreateSettlementGroupMembership(t *testing.T) {
	store := expenseTestStore()
	svc := NewSettlementService(store, events.NopPublisher{})

	// carol exists but is outside the group.
	_, err := svc.CreateSettlement(context.Background(), "carol", CreateSettlementInput{
		PaidByUserID:     "carol",
		ReceivedByUserID: "alice",
		Amount:           5.0,
		GroupID:          "grp",
	})
	var notMember *models.NotAMemberError
	if !errors.As(err, &notMember) {
		t.Fatalf("error = %v, want NotAMemberError", err)
	}
}
