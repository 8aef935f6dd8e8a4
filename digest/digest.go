// This file is part of arm7tdmi.
//
// arm7tdmi is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// arm7tdmi is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with arm7tdmi.  If not, see <https://www.gnu.org/licenses/>.

// Package digest is used to create a fingerprint of emulation activity. The
// fingerprint is a SHA-1 hash, chained so that the digest of each event
// includes the digest of every event before it.
//
// The Bus type fingerprints every request made by the CPU and the response
// made to it. Two runs of the same program with the same preferences must
// produce the same digest. A change to the digest means that a change to
// the emulation has changed the clock by clock behaviour of the CPU.
package digest

// Digest implementations compute a SHA-1 value of emulation activity.
type Digest interface {
	Hash() string
	ResetDigest()
}
