package domain

import "testing"

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{StatusPending, StatusProcessing, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusShipped, false},
		{StatusPending, StatusDelivered, false},
		{StatusProcessing, StatusShipped, true},
		{StatusProcessing, StatusCancelled, true},
		{StatusProcessing, StatusDelivered, false},
		{StatusProcessing, StatusPending, false},
		{StatusShipped, StatusDelivered, true},
		{StatusShipped, StatusCancelled, false},
		{StatusShipped, StatusPending, false},
		{StatusDelivered, StatusCancelled, false},
		{StatusDelivered, StatusPending, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusProcessing, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Errorf("%s -> %s: got %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestOrderStatus_SelfTransitionRejected(t *testing.T) {
	for _, s := range []OrderStatus{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled} {
		if s.CanTransitionTo(s) {
			t.Errorf("%s -> %s should not be allowed", s, s)
		}
	}
}

func TestOrderStatus_IsTerminal(t *testing.T) {
	terminal := map[OrderStatus]bool{
		StatusPending:    false,
		StatusProcessing: false,
		StatusShipped:    false,
		StatusDelivered:  true,
		StatusCancelled:  true,
	}
	for s, want := range terminal {
		if got := s.IsTerminal(); got != want {
			t.Errorf("%s terminal: got %v, want %v", s, got, want)
		}
	}
}

func TestOrderStatus_Valid(t *testing.T) {
	if OrderStatus("returned").Valid() {
		t.Errorf("unknown status should not be valid")
	}
	if !StatusShipped.Valid() {
		t.Errorf("shipped should be valid")
	}
	if OrderStatus("returned").IsTerminal() {
		t.Errorf("unknown status should not be terminal")
	}
}

func TestOrder_HasSeller(t *testing.T) {
	o := &Order{SellerIDs: []string{"s1", "s2"}}
	if !o.HasSeller("s1") {
		t.Errorf("expected s1 to be a seller of the order")
	}
	if o.HasSeller("s3") {
		t.Errorf("s3 is not a seller of the order")
	}
}
