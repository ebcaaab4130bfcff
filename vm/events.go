// This file is part of iridium.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package vm

import (
	"time"

	"github.com/google/uuid"
)

// EventKind tags the lifecycle events an Instance records.
type EventKind int

const (
	// EventStart is recorded once, before the fetch/decode/execute loop begins.
	EventStart EventKind = iota
	// EventStop is recorded on normal termination (HLT or PC running off the image).
	EventStop
	// EventCrash is recorded when header verification fails.
	EventCrash
)

func (k EventKind) String() string {
	switch k {
	case EventStart:
		return "start"
	case EventStop:
		return "stop"
	case EventCrash:
		return "crash"
	default:
		return "unknown"
	}
}

// Event is one entry in an Instance's append-only event log.
type Event struct {
	Kind       EventKind
	At         time.Time
	InstanceID uuid.UUID
}

func (i *Instance) recordEvent(kind EventKind) {
	i.events = append(i.events, Event{Kind: kind, At: time.Now(), InstanceID: i.id})
}

// Events returns the instance's event log in program order.
func (i *Instance) Events() []Event {
	return i.events
}
