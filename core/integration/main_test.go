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

package core_test

import (
	"flag"
	"os"
	"testing"

	"github.com/Loopring/protocols-sub002/core/integration/steps"
	"github.com/Loopring/protocols-sub002/core/settlement"
	"github.com/Loopring/protocols-sub002/logging"

	"github.com/cucumber/godog"
)

// block timestamp every scenario settles at unless a ring says otherwise
const now = 1_600_000_000

var (
	gdOpts = godog.Options{
		Output: os.Stdout,
		Format: "progress",
		Strict: true,
	}

	exchange *steps.Exchange
)

func init() {
	godog.BindCommandLineFlags("godog.", &gdOpts)
}

func TestMain(m *testing.M) {
	flag.Parse()
	gdOpts.Paths = flag.Args()
	if len(gdOpts.Paths) == 0 {
		gdOpts.Paths = []string{"features"}
	}
	os.Exit(m.Run())
}

func TestFeatures(t *testing.T) {
	status := godog.TestSuite{
		Name:                "ring settlement",
		ScenarioInitializer: InitializeScenario,
		Options:             &gdOpts,
	}.Run()
	if status != 0 {
		t.Fatalf("godog suite failed with status %d", status)
	}
}

func InitializeScenario(s *godog.ScenarioContext) {
	s.BeforeScenario(func(*godog.Scenario) {
		cfg := settlement.NewDefaultConfig()
		exchange = steps.NewExchange(settlement.New(logging.NewTestLogger(), cfg), cfg)
	})

	s.Step(`^the burn rate is (\d+)$`, func(rate string) error {
		return steps.TheBurnRateIs(exchange, rate)
	})
	s.Step(`^the following balances:$`, func(table *godog.Table) error {
		return steps.TheFollowingBalances(exchange, table)
	})
	s.Step(`^the following orders:$`, func(table *godog.Table) error {
		return steps.TheFollowingOrders(exchange, now, table)
	})
	s.Step(`^the following rings are settled:$`, func(table *godog.Table) error {
		return steps.TheFollowingRingsAreSettled(exchange, now, table)
	})
	s.Step(`^the ring outcomes should be:$`, func(table *godog.Table) error {
		return steps.TheRingOutcomesShouldBe(exchange, table)
	})
	s.Step(`^the balances should be:$`, func(table *godog.Table) error {
		return steps.TheBalancesShouldBe(exchange, table)
	})
	s.Step(`^the burned amount of token (\d+) should be (-?\d+)$`, func(token, amount string) error {
		return steps.TheBurnedAmountOfTokenShouldBe(exchange, token, amount)
	})
	s.Step(`^tokens should be conserved$`, func() error {
		return steps.TokensShouldBeConserved(exchange)
	})
}
