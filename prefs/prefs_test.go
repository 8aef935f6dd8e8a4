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

package prefs_test

import (
	"errors"
	"testing"

	"github.com/jetsetilly/arm7tdmi/prefs"
	"github.com/jetsetilly/arm7tdmi/test"
)

func TestBool(t *testing.T) {
	var v prefs.Bool
	test.ExpectEquality(t, v.String(), "false")

	test.ExpectSuccess(t, v.Set(true))
	test.ExpectEquality(t, v.Get(), prefs.Value(true))
	test.ExpectSuccess(t, v.Set("foo"))
	test.ExpectEquality(t, v.Get(), prefs.Value(false))
	test.ExpectSuccess(t, v.Set("TRUE"))
	test.ExpectEquality(t, v.String(), "true")

	test.ExpectFailure(t, v.Set(10))
	test.ExpectSuccess(t, v.Reset())
	test.ExpectEquality(t, v.String(), "false")
}

func TestInt(t *testing.T) {
	var v prefs.Int
	test.ExpectEquality(t, v.String(), "0")

	test.ExpectSuccess(t, v.Set(10))
	test.ExpectEquality(t, v.Get(), prefs.Value(10))
	test.ExpectSuccess(t, v.Set("-3"))
	test.ExpectEquality(t, v.String(), "-3")
	test.ExpectSuccess(t, v.Set("0x10"))
	test.ExpectEquality(t, v.Get(), prefs.Value(16))

	// failed set does not change the value
	test.ExpectFailure(t, v.Set("foo"))
	test.ExpectEquality(t, v.Get(), prefs.Value(16))
	test.ExpectFailure(t, v.Set(1.5))
}

func TestString(t *testing.T) {
	var v prefs.String
	test.ExpectEquality(t, v.String(), "")
	test.ExpectSuccess(t, v.Set("foo"))
	test.ExpectEquality(t, v.Get(), prefs.Value("foo"))
	test.ExpectSuccess(t, v.Set(100))
	test.ExpectEquality(t, v.String(), "100")
	test.ExpectSuccess(t, v.Reset())
	test.ExpectEquality(t, v.String(), "")
}

func TestAddress(t *testing.T) {
	var v prefs.Address
	test.ExpectEquality(t, v.String(), "0x00000000")

	test.ExpectSuccess(t, v.Set("0x08000000"))
	test.ExpectEquality(t, v.Get(), prefs.Value(uint32(0x08000000)))
	test.ExpectEquality(t, v.String(), "0x08000000")
	test.ExpectSuccess(t, v.Set(4096))
	test.ExpectEquality(t, v.String(), "0x00001000")

	test.ExpectFailure(t, v.Set("0x100000000"))
	test.ExpectFailure(t, v.Set(-1))
	test.ExpectEquality(t, v.String(), "0x00001000")
}

func TestHooks(t *testing.T) {
	var v prefs.Int
	var post int

	v.SetHookPre(func(value prefs.Value) error {
		if value.(int) < 0 {
			return errors.New("negative")
		}
		return nil
	})
	v.SetHookPost(func(value prefs.Value) error {
		post = value.(int)
		return nil
	})

	test.ExpectSuccess(t, v.Set(5))
	test.ExpectEquality(t, post, 5)

	// pre hook prevents the value from being stored
	test.ExpectFailure(t, v.Set(-5))
	test.ExpectEquality(t, v.Get(), prefs.Value(5))
	test.ExpectEquality(t, post, 5)
}

func TestRegistry(t *testing.T) {
	var b prefs.Bool
	var i prefs.Int
	var a prefs.Address

	reg := prefs.NewRegistry()
	test.ExpectSuccess(t, reg.Add("test.bool", &b))
	test.ExpectSuccess(t, reg.Add("test.int", &i))
	test.ExpectSuccess(t, reg.Add("test.address", &a))
	test.ExpectFailure(t, reg.Add("test.int", &i))

	test.ExpectSuccess(t, reg.Set("test.int", 7))
	v, ok := reg.Get("test.int")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, v, prefs.Value(7))
	test.ExpectFailure(t, reg.Set("test.missing", 7))

	test.ExpectEquality(t, reg.String(), "test.address :: 0x00000000\ntest.bool :: false\ntest.int :: 7\n")

	prefs.PushCommandLineStack("test.bool::true; test.address::0x100; other::value")
	test.ExpectSuccess(t, reg.Apply())
	test.ExpectEquality(t, b.Get(), prefs.Value(true))
	test.ExpectEquality(t, a.Get(), prefs.Value(uint32(0x100)))
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "other::value")

	prefs.PushCommandLineStack("test.int::foo")
	test.ExpectFailure(t, reg.Apply())
	prefs.PopCommandLineStack()

	test.ExpectSuccess(t, reg.Reset())
	test.ExpectEquality(t, i.Get(), prefs.Value(0))
}
