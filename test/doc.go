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

// Package test contains helper functions that remove common boilerplate from
// the tests in the rest of the project.
//
// The Expect*() functions report failures with t.Errorf() and allow the test
// to continue. The Demand*() functions report with t.Fatalf() and should be
// used when the result is required for the rest of the test to make sense.
//
// Success and failure are judged by type. For a bool, true is success. For an
// error, nil is success. A nil value is also considered to be a success
// because that is how errors usually work.
//
// The CompareWriter type implements the io.Writer interface and should be used
// to capture output for comparison with an expected string.
package test
