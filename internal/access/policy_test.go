package access

import (
	"testing"

	"alamin-service/internal/domain/client"
	"alamin-service/internal/domain/user"
	xerrors "alamin-service/internal/pkg/errors"

	"github.com/stretchr/testify/require"
)

var (
	manager = user.Actor{Username: "Diaa", Role: user.RoleManager}
	alice   = user.Actor{Username: "alice", Role: user.RoleStaff}
)

func clientOwnedBy(id int64, owner string) client.Client {
	return client.Client{ID: id, FullName: "c", AddedBy: owner}
}

func TestFilter_ManagerSeesEverything(t *testing.T) {
	all := []client.Client{
		clientOwnedBy(1, "alice"),
		clientOwnedBy(2, "bob"),
		clientOwnedBy(3, ""),
	}

	require.Equal(t, all, Filter(manager, all))
}

func TestFilter_StaffSeesOnlyOwnRecords(t *testing.T) {
	all := []client.Client{
		clientOwnedBy(5, "alice"),
		clientOwnedBy(6, "bob"),
		clientOwnedBy(7, "alice"),
	}

	visible := Filter(alice, all)
	require.Len(t, visible, 2)
	require.Equal(t, int64(5), visible[0].ID)
	require.Equal(t, int64(7), visible[1].ID)
}

func TestFilter_OwnershipIsCaseInsensitive(t *testing.T) {
	all := []client.Client{clientOwnedBy(1, "ALICE")}
	require.Len(t, Filter(alice, all), 1)
}

func TestFilter_UnownedRecordIsManagerOnly(t *testing.T) {
	all := []client.Client{clientOwnedBy(1, "")}

	require.Empty(t, Filter(alice, all))
	require.Len(t, Filter(manager, all), 1)
}

func TestAuthorize_DeniesForeignRecord(t *testing.T) {
	err := Authorize(alice, clientOwnedBy(9, "bob"))
	require.ErrorIs(t, err, xerrors.ErrForbidden)

	require.NoError(t, Authorize(alice, clientOwnedBy(9, "Alice")))
	require.NoError(t, Authorize(manager, clientOwnedBy(9, "bob")))
}
