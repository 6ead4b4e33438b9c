package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComplaint_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from string
		to   string
		want bool
	}{
		{ComplaintStatusRegistered, ComplaintStatusInProgress, true},
		{ComplaintStatusRegistered, ComplaintStatusResolved, true},
		{ComplaintStatusRegistered, ComplaintStatusRejected, true},
		{ComplaintStatusInProgress, ComplaintStatusResolved, true},
		{ComplaintStatusInProgress, ComplaintStatusRejected, true},
		{ComplaintStatusInProgress, ComplaintStatusRegistered, false},
		{ComplaintStatusResolved, ComplaintStatusInProgress, false},
		{ComplaintStatusRejected, ComplaintStatusRegistered, false},
	}

	for _, tt := range tests {
		c := &Complaint{Status: tt.from}
		assert.Equal(t, tt.want, c.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}
