package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/framehaus/StudioBookingService/pkg/ptr"
)

func TestResolveDuration(t *testing.T) {
	tests := []struct {
		name       string
		configured *int
		booking    *int
		want       int
	}{
		{"configured wins over booking", ptr.Ptr(90), ptr.Ptr(60), 90},
		{"booking used when no configured", nil, ptr.Ptr(60), 60},
		{"booking used when no configured, non-default value", nil, ptr.Ptr(45), 45},
		{"fallback when both absent", nil, nil, 60},
		{"zero configured treated as absent", ptr.Ptr(0), ptr.Ptr(45), 45},
		{"negative configured treated as absent", ptr.Ptr(-30), ptr.Ptr(45), 45},
		{"zero booking treated as absent", nil, ptr.Ptr(0), 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveDuration(tt.configured, tt.booking))
		})
	}
}
