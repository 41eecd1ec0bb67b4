package feedback

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validComplaint(t *testing.T) *Complaint {
	t.Helper()
	c, err := NewComplaint(uuid.New(), "Bob", "Bob@Example.com", "SA-20260901-1234",
		"Damaged on arrival", "The casing was cracked when the box was opened")
	require.NoError(t, err)
	return c
}

func TestNewComplaint(t *testing.T) {
	t.Run("creates open complaint", func(t *testing.T) {
		c := validComplaint(t)

		assert.Equal(t, ComplaintStatusOpen, c.Status)
		assert.Equal(t, "bob@example.com", c.CustomerEmail)
		assert.Equal(t, "SA-20260901-1234", c.OrderCode)
		assert.Empty(t, c.Sentiment)
	})

	t.Run("order code is optional free text", func(t *testing.T) {
		c, err := NewComplaint(uuid.New(), "Bob", "bob@example.com", "",
			"Late delivery", "Arrived a week after the promised date")
		require.NoError(t, err)
		assert.Empty(t, c.OrderCode)

		c, err = NewComplaint(uuid.New(), "Bob", "bob@example.com", "phone order from May",
			"Late delivery", "Arrived a week after the promised date")
		require.NoError(t, err)
		assert.Equal(t, "phone order from May", c.OrderCode)
	})

	t.Run("fails with blank required fields", func(t *testing.T) {
		_, err := NewComplaint(uuid.New(), "Bob", "bob@example.com", "", "  ", "desc")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Subject")

		_, err = NewComplaint(uuid.New(), "Bob", "bob@example.com", "", "subject", "")
		require.Error(t, err)

		_, err = NewComplaint(uuid.Nil, "Bob", "bob@example.com", "", "subject", "desc")
		require.Error(t, err)
	})
}

func TestComplaintResolve(t *testing.T) {
	t.Run("open complaint resolves once", func(t *testing.T) {
		c := validComplaint(t)
		require.NoError(t, c.Resolve())
		assert.Equal(t, ComplaintStatusResolved, c.Status)

		require.Error(t, c.Resolve())
	})
}

func TestComplaintSetSentiment(t *testing.T) {
	c := validComplaint(t)
	c.SetSentiment(" negative ")
	assert.Equal(t, "negative", c.Sentiment)
}
