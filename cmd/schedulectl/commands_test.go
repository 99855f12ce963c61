package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalSchedule/internal/integrations/scheduleapi"
)

func twoRoomSchedule() scheduleapi.Schedule {
	busy := &scheduleapi.Occupant{UserName: "alice", Project: "demo", Status: "reserved"}
	return scheduleapi.Schedule{
		Config:     scheduleapi.Config{WorkStartMinute: 600, WorkEndMinute: 720, SlotMinutes: 30, Timezone: "UTC"},
		Resources:  []scheduleapi.Resource{{ID: 1, Name: "Room A"}, {ID: 2, Name: "Room B"}},
		Aggregated: true,
		Days: []scheduleapi.Day{{
			Date:     "2024-06-03",
			DayShort: "Mon",
			Slots: []scheduleapi.Slot{
				{Index: 0, StartTime: "10:00", EndTime: "10:30", Status: "available"},
				{Index: 1, StartTime: "10:30", EndTime: "11:00", Status: "occupied", Info: busy, Rooms: []string{"Room A"}},
				{Index: 2, StartTime: "11:00", EndTime: "11:30", Status: "occupied", Info: busy, Rooms: []string{"Room A"}},
				{Index: 3, StartTime: "11:30", EndTime: "12:00", Status: "available"},
			},
		}},
	}
}

func run(t *testing.T, handler http.HandlerFunc, args ...string) (string, error) {
	t.Helper()

	server := httptest.NewServer(handler)
	defer server.Close()

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--server", server.URL}, args...))

	err := root.Execute()
	return out.String(), err
}

func TestGridCmd(t *testing.T) {
	out, err := run(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1,2", r.URL.Query().Get("resourceIds"))
		_ = json.NewEncoder(w).Encode(twoRoomSchedule())
	}, "grid", "--from", "2024-06-03", "--resource", "1,2")

	require.NoError(t, err)
	assert.Contains(t, out, "aggregated view: Room A (#1), Room B (#2)")
	assert.Contains(t, out, "10:30-11:00")
	assert.Contains(t, out, "Room A")
}

func TestTimelineCmd_GroupsConsecutiveSlots(t *testing.T) {
	out, err := run(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(twoRoomSchedule())
	}, "timeline", "--from", "2024-06-03")

	require.NoError(t, err)
	assert.Contains(t, out, "10:00-10:30")
	assert.Contains(t, out, "10:30-11:30")
	assert.Contains(t, out, "2 slot(s)")
	assert.Contains(t, out, "11:30-12:00")
}

func TestCheckCmd(t *testing.T) {
	out, err := run(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/resources/1/availability", r.URL.Path)
		_ = json.NewEncoder(w).Encode(scheduleapi.Availability{
			ResourceID: 1,
			Conflicts:  []string{"alice (demo): 2024-06-03 10:30-11:30"},
		})
	}, "check", "--resource", "1", "--start", "2024-06-03T10:00:00Z", "--end", "2024-06-03T11:00:00Z")

	require.NoError(t, err)
	assert.Contains(t, out, "resource #1 is busy")
	assert.Contains(t, out, "alice (demo): 2024-06-03 10:30-11:30")
}

func TestCheckCmd_WatchPrintsOnlyChanges(t *testing.T) {
	var calls atomic.Int32
	out, err := run(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_ = json.NewEncoder(w).Encode(scheduleapi.Availability{
			ResourceID: 1,
			Conflicts:  []string{"alice (demo): 2024-06-03 10:30-11:30"},
		})
	}, "check", "--resource", "1", "--start", "2024-06-03T10:00:00Z", "--end", "2024-06-03T11:00:00Z",
		"--watch", "10ms", "--count", "3")

	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "resource #1 is busy"))
	assert.NotContains(t, out, "check failed")
	assert.LessOrEqual(t, calls.Load(), int32(3))
}

func TestCheckCmd_WatchReportsNewAnswer(t *testing.T) {
	var calls atomic.Int32
	out, err := run(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			_ = json.NewEncoder(w).Encode(scheduleapi.Availability{ResourceID: 1, IsAvailable: true})
			return
		}
		_ = json.NewEncoder(w).Encode(scheduleapi.Availability{
			ResourceID: 1,
			Conflicts:  []string{"bob (film): 2024-06-03 10:00-10:30"},
		})
	}, "check", "--resource", "1", "--start", "2024-06-03T10:00:00Z", "--end", "2024-06-03T11:00:00Z",
		"--watch", "20ms", "--count", "2")

	require.NoError(t, err)
	// Последняя проверка никогда не вытесняется, поэтому итоговый ответ всегда напечатан
	assert.True(t, strings.HasSuffix(out, "  bob (film): 2024-06-03 10:00-10:30\n"))
}

func TestBookCmd_RequiresUser(t *testing.T) {
	_, err := run(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not be sent without a user")
	}, "book", "--resource", "1", "--start", "2024-06-03T10:00:00Z", "--end", "2024-06-03T11:00:00Z", "--name", "carol")

	assert.Error(t, err)
}

func TestBookCmd_Conflict(t *testing.T) {
	out, err := run(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "5", r.Header.Get("X-User-ID"))
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(scheduleapi.ErrorResponse{
			Error:     "выбранное время уже занято",
			Conflicts: []string{"Room A: alice (demo): 2024-06-03 10:30-11:30"},
		})
	}, "--user", "5", "book", "--resource", "1", "--start", "2024-06-03T10:00:00Z", "--end", "2024-06-03T11:00:00Z", "--name", "carol")

	assert.ErrorIs(t, err, scheduleapi.ErrSlotNotAvailable)
	assert.Contains(t, out, "Room A: alice (demo): 2024-06-03 10:30-11:30")
}
