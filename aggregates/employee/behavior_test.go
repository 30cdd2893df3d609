/*
 * MIT License
 *
 * Copyright (c) 2024-2026 Holon Authors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package employee

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holonhq/holon/aggregate"
	"github.com/holonhq/holon/errors"
	"github.com/holonhq/holon/money"
)

func usd(t *testing.T, amount string) money.Money {
	t.Helper()
	m, err := money.FromString(amount, "USD")
	require.NoError(t, err)
	return m
}

func apply(t *testing.T, state *State, cmd aggregate.Command) (*State, *aggregate.Effect) {
	t.Helper()
	effect, err := NewBehavior().Handle(context.TODO(), state, cmd)
	require.NoError(t, err)
	require.NotNil(t, effect)
	return effect.State.(*State), effect
}

func reject(t *testing.T, state *State, cmd aggregate.Command, code errors.Code) {
	t.Helper()
	effect, err := NewBehavior().Handle(context.TODO(), state, cmd)
	require.Nil(t, effect)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, code), "want %s, got %v", code, err)
}

func hired(t *testing.T) *State {
	t.Helper()
	state, _ := apply(t, new(State), Hire{
		EmployeeID:   "emp-1",
		Name:         "Ada",
		Title:        "Engineer",
		Compensation: usd(t, "90000.00"),
	})
	return state
}

func TestEmployeeLifecycle(t *testing.T) {
	t.Run("With hiring starting in Active", func(t *testing.T) {
		state, effect := apply(t, new(State), Hire{
			EmployeeID:   "emp-1",
			Name:         "Ada",
			Compensation: usd(t, "90000.00"),
		})
		assert.Equal(t, StatusActive, state.Status)
		assert.False(t, state.HiredAt.IsZero())
		require.Len(t, effect.Events, 1)
		assert.Equal(t, "emp.hired", effect.Events[0].EventType)
	})
	t.Run("With rehiring an existing record rejected", func(t *testing.T) {
		state := hired(t)
		reject(t, state, Hire{EmployeeID: "emp-1", Name: "Ada", Compensation: usd(t, "1.00")},
			errors.CodeInvalidTransition)
	})
	t.Run("With missing id or currency rejected", func(t *testing.T) {
		reject(t, new(State), Hire{Name: "Ada", Compensation: usd(t, "1.00")}, errors.CodeInvalidArgument)
		reject(t, new(State), Hire{EmployeeID: "emp-1", Name: "Ada"}, errors.CodeInvalidArgument)
	})
	t.Run("With suspend and reinstate round trip", func(t *testing.T) {
		state := hired(t)
		reject(t, state, Reinstate{}, errors.CodeInvalidTransition)

		state, _ = apply(t, state, Suspend{Reason: "investigation"})
		assert.Equal(t, StatusSuspended, state.Status)
		assert.Equal(t, "investigation", state.SuspendReason)
		reject(t, state, Suspend{Reason: "again"}, errors.CodeInvalidTransition)

		state, _ = apply(t, state, Reinstate{})
		assert.Equal(t, StatusActive, state.Status)
		assert.Empty(t, state.SuspendReason)
	})
	t.Run("With termination terminal", func(t *testing.T) {
		state := hired(t)
		state, _ = apply(t, state, Terminate{})
		assert.Equal(t, StatusTerminated, state.Status)
		assert.False(t, state.TerminatedAt.IsZero())
		reject(t, state, Terminate{}, errors.CodeInvalidTransition)
		reject(t, state, Reinstate{}, errors.CodeInvalidTransition)
	})
	t.Run("With termination allowed from Suspended", func(t *testing.T) {
		state := hired(t)
		state, _ = apply(t, state, Suspend{Reason: "investigation"})
		state, _ = apply(t, state, Terminate{})
		assert.Equal(t, StatusTerminated, state.Status)
	})
}

func TestEmployeeProfile(t *testing.T) {
	t.Run("With addresses and contacts mutable while Active", func(t *testing.T) {
		state := hired(t)
		state, _ = apply(t, state, AddAddress{AddressID: "a1", Label: "home", City: "Lyon", Country: "FR"})
		state, _ = apply(t, state, AddContact{ContactID: "c1", Channel: "email", Value: "ada@example.com"})
		require.Len(t, state.Addresses, 1)
		require.Len(t, state.Contacts, 1)

		state, _ = apply(t, state, RemoveAddress{AddressID: "a1"})
		state, _ = apply(t, state, RemoveContact{ContactID: "c1"})
		assert.Empty(t, state.Addresses)
		assert.Empty(t, state.Contacts)
	})
	t.Run("With the profile frozen while Suspended", func(t *testing.T) {
		state := hired(t)
		state, _ = apply(t, state, Suspend{Reason: "investigation"})

		reject(t, state, AddAddress{AddressID: "a1"}, errors.CodeInvalidTransition)
		reject(t, state, AddContact{ContactID: "c1", Value: "x"}, errors.CodeInvalidTransition)
		reject(t, state, ChangeTitle{Title: "Staff Engineer"}, errors.CodeInvalidTransition)
		reject(t, state, AdjustCompensation{Compensation: usd(t, "95000.00")}, errors.CodeInvalidTransition)
	})
	t.Run("With duplicate and unknown ids rejected", func(t *testing.T) {
		state := hired(t)
		state, _ = apply(t, state, AddAddress{AddressID: "a1"})
		reject(t, state, AddAddress{AddressID: "a1"}, errors.CodeInvalidArgument)
		reject(t, state, RemoveAddress{AddressID: "missing"}, errors.CodeInvalidArgument)
		reject(t, state, RemoveContact{ContactID: "missing"}, errors.CodeInvalidArgument)
	})
	t.Run("With compensation currency enforced", func(t *testing.T) {
		state := hired(t)
		eur, err := money.FromString("85000.00", "EUR")
		require.NoError(t, err)
		reject(t, state, AdjustCompensation{Compensation: eur}, errors.CodeCurrencyMismatch)

		state, _ = apply(t, state, AdjustCompensation{Compensation: usd(t, "95000.00")})
		assert.True(t, state.Compensation.Equal(usd(t, "95000.00")))
	})
	t.Run("With Clone isolating owned collections", func(t *testing.T) {
		state := hired(t)
		state, _ = apply(t, state, AddAddress{AddressID: "a1", City: "Lyon"})
		clone := state.Clone().(*State)
		clone.Addresses[0].City = "Paris"
		assert.Equal(t, "Lyon", state.Addresses[0].City)
	})
}
