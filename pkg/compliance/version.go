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

// Package compliance computes OS compliance verdicts from raw agent
// attributes, parsed version descriptors, and lifecycle registry data.
package compliance

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/stackguard/edgesync/pkg/models"
)

var (
	serverVersionRe = regexp.MustCompile(`(?i)server\s+(\d{4})`)
	clientVersionRe = regexp.MustCompile(`(?i)windows\s+(\d{2})`)
	featureUpdateRe = regexp.MustCompile(`(\d{2})H(\d)`)
	buildNumberRe   = regexp.MustCompile(`\d{4,6}`)
	editionKeywords = []string{"Enterprise", "Education", "Pro", "Home", "Server"}
)

// ParseWindowsVersion parses a raw OS name + build string into a
// structured descriptor, using the lifecycle registry to resolve which
// feature update the observed build belongs to. Returns nil for
// non-Windows or unparseable input; malformed OS strings from the field
// are expected, not exceptional.
func ParseWindowsVersion(osName, osRevision string, cycles []models.EOLCycle) *models.VersionDescriptor {
	major := parseMajorVersion(osName)
	if major == "" {
		return nil
	}

	desc := &models.VersionDescriptor{
		MajorVersion: major,
		Edition:      parseEdition(osName),
		BuildNumber:  parseBuildNumber(osRevision),
	}

	resolveFeatureUpdate(desc, cycles)

	return desc
}

// parseMajorVersion extracts "11", "10", or "Server YYYY" from the OS name.
func parseMajorVersion(osName string) string {
	if !strings.Contains(strings.ToLower(osName), "windows") {
		return ""
	}

	if m := serverVersionRe.FindStringSubmatch(osName); m != nil {
		return "Server " + m[1]
	}

	if m := clientVersionRe.FindStringSubmatch(osName); m != nil {
		if m[1] == "11" || m[1] == "10" {
			return m[1]
		}
	}

	return ""
}

// parseEdition matches known edition keywords in the OS name. The keyword
// list is ordered so "Pro" never shadows longer edition names.
func parseEdition(osName string) string {
	lower := strings.ToLower(osName)

	for _, keyword := range editionKeywords {
		if strings.Contains(lower, strings.ToLower(keyword)) {
			return keyword
		}
	}

	return ""
}

// parseBuildNumber extracts the OS build from a revision string like
// "22631" or "10.0.22631.3007". Windows builds are the longest numeric
// run of at least four digits; when several qualify the largest wins.
func parseBuildNumber(osRevision string) int {
	best := 0

	for _, run := range buildNumberRe.FindAllString(osRevision, -1) {
		n, err := strconv.Atoi(run)
		if err != nil {
			continue
		}

		if n > best {
			best = n
		}
	}

	return best
}

// resolveFeatureUpdate labels the descriptor with the newest registry
// cycle whose latest build is at or below the observed build, and derives
// the latest-build flag plus a builds-behind count for the major version.
func resolveFeatureUpdate(desc *models.VersionDescriptor, cycles []models.EOLCycle) {
	if desc.BuildNumber == 0 {
		return
	}

	bestBuild := 0
	newestBuild := 0
	behind := 0

	for i := range cycles {
		cycle := &cycles[i]
		if !cycleMatchesMajor(cycle, desc.MajorVersion) {
			continue
		}

		latest := parseBuildNumber(cycle.Latest)
		if latest == 0 {
			continue
		}

		if latest > newestBuild {
			newestBuild = latest
		}

		if latest > desc.BuildNumber {
			behind++
			continue
		}

		if latest > bestBuild {
			bestBuild = latest
			desc.FeatureUpdate = featureUpdateLabel(cycle)
		}
	}

	desc.IsLatestBuild = newestBuild > 0 && desc.BuildNumber >= newestBuild
	desc.BuildsBehind = behind
}

// cycleMatchesMajor reports whether a registry cycle belongs to the given
// major version, matching on the release label first and the cycle name
// as a fallback. The major must appear digit-bounded so "11" never matches
// inside a Windows 10 build label like "10-1511".
func cycleMatchesMajor(cycle *models.EOLCycle, major string) bool {
	return containsMajorToken(cycle.ReleaseLabel, major) || containsMajorToken(cycle.Cycle, major)
}

func containsMajorToken(s, major string) bool {
	if major == "" {
		return false
	}

	for from := 0; ; {
		i := strings.Index(s[from:], major)
		if i < 0 {
			return false
		}

		i += from

		end := i + len(major)
		if (i == 0 || !isDigit(s[i-1])) && (end == len(s) || !isDigit(s[end])) {
			return true
		}

		from = i + 1
	}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// featureUpdateLabel extracts the "YYH#" label from a registry cycle.
func featureUpdateLabel(cycle *models.EOLCycle) string {
	if m := featureUpdateRe.FindString(cycle.ReleaseLabel); m != "" {
		return m
	}

	return featureUpdateRe.FindString(cycle.Cycle)
}

// CompareFeatureUpdates compares two "YYH#" feature-update labels as
// (year, half) pairs. Returns >0 when a is newer than b, 0 when equal,
// <0 when older. Unparseable labels sort lowest.
func CompareFeatureUpdates(a, b string) int {
	aYear, aHalf := parseFeatureUpdate(a)
	bYear, bHalf := parseFeatureUpdate(b)

	if aYear != bYear {
		return aYear - bYear
	}

	return aHalf - bHalf
}

func parseFeatureUpdate(label string) (year, half int) {
	m := featureUpdateRe.FindStringSubmatch(label)
	if m == nil {
		return 0, 0
	}

	year, _ = strconv.Atoi(m[1])
	half, _ = strconv.Atoi(m[2])

	return year, half
}
