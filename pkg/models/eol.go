/*
 * Copyright 2025 StackGuard, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// EOLCycle is one OS lifecycle entry from the upstream EOL feed. Treated as
// read-only reference data with a freshness window.
type EOLCycle struct {
	Cycle        string   `json:"cycle"`
	ReleaseLabel string   `json:"releaseLabel,omitempty"`
	ReleaseDate  FlexTime `json:"releaseDate"`
	Support      FlexTime `json:"support"`
	EOL          FlexTime `json:"eol"`
	Latest       string   `json:"latest,omitempty"`
	LTS          bool     `json:"lts,omitempty"`
}

// FlexTime handles upstream lifecycle fields that are either a date string
// or a boolean sentinel. A boolean decodes to "no defined date", never to a
// parseable time.
type FlexTime struct {
	Time  time.Time
	Valid bool
	Bool  bool
}

const flexTimeLayout = "2006-01-02"

func (f *FlexTime) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case string:
		t, err := time.Parse(flexTimeLayout, value)
		if err != nil {
			return fmt.Errorf("invalid lifecycle date %q: %w", value, err)
		}

		f.Time = t
		f.Valid = true

		return nil
	case bool:
		f.Bool = value
		f.Valid = false

		return nil
	case nil:
		f.Valid = false

		return nil
	default:
		return fmt.Errorf("%w: %T", errInvalidLifecycleField, v)
	}
}

func (f FlexTime) MarshalJSON() ([]byte, error) {
	if f.Valid {
		return json.Marshal(f.Time.Format(flexTimeLayout))
	}

	return json.Marshal(f.Bool)
}

// Passed reports whether the field carries a date that is already behind
// the supplied reference time.
func (f FlexTime) Passed(now time.Time) bool {
	return f.Valid && f.Time.Before(now)
}
