package models

import "testing"

func TestComplaintStatusRankOrdering(t *testing.T) {
	flow := []string{
		ComplaintStatusSubmitted,
		ComplaintStatusAssigned,
		ComplaintStatusInProgress,
		ComplaintStatusResolved,
	}

	for i := 1; i < len(flow); i++ {
		if ComplaintStatusRank(flow[i-1]) >= ComplaintStatusRank(flow[i]) {
			t.Errorf("expected %s to rank below %s", flow[i-1], flow[i])
		}
	}
}

func TestComplaintStatusRankUnknown(t *testing.T) {
	for _, status := range []string{"", "closed", "RESOLVED"} {
		if got := ComplaintStatusRank(status); got != -1 {
			t.Errorf("ComplaintStatusRank(%q) = %d, want -1", status, got)
		}
	}
}
