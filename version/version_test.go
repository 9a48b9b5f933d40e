// Copyright (C) 2023 Gobalsky Labs Limited
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package version_test

import (
	"testing"

	"github.com/Loopring/protocols-sub002/version"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSemver(t *testing.T) {
	v, err := version.Semver()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), v.Major)
	assert.Equal(t, uint64(1), v.Minor)
	assert.Equal(t, []string{"dev"}, v.Build)
	assert.Equal(t, "v"+v.String(), version.Get())
}
