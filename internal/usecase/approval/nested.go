package approval

import (
	"context"
	"errors"

	domain "asset-approval-backend/internal/domain/approval"
	"asset-approval-backend/internal/domain/asset"
	"asset-approval-backend/internal/domain/category"
	"asset-approval-backend/internal/domain/uow"
	"asset-approval-backend/pkg/apperror"
	"asset-approval-backend/pkg/id"
)

func signatureFields(in SignatureInput) domain.SignatureFields {
	return domain.SignatureFields{UserID: emptyToNil(in.UserID), Name: in.Name, Email: in.Email, IsDeleted: in.IsDeleted}
}

func assetFields(in AssetInput) domain.AssetFields {
	return domain.AssetFields{
		AssetID:       emptyToNil(in.AssetID),
		Name:          in.Name,
		SerialNumber:  in.SerialNumber,
		IsMaintenance: in.IsMaintenance,
		Image:         in.Image,
		CategoryID:    emptyToNil(in.CategoryID),
		IsDeleted:     in.IsDeleted,
	}
}

// signatureEntries tags each item by id presence.
func signatureEntries(in []SignatureInput) []domain.Entry[domain.SignatureFields] {
	out := make([]domain.Entry[domain.SignatureFields], 0, len(in))
	for _, s := range in {
		out = append(out, domain.EntryOf(s.ID, signatureFields(s)))
	}
	return out
}

// newSignatureEntries ignores ids: nothing exists yet on a fresh approval.
func newSignatureEntries(in []SignatureInput) []domain.Entry[domain.SignatureFields] {
	out := make([]domain.Entry[domain.SignatureFields], 0, len(in))
	for _, s := range in {
		out = append(out, domain.NewEntry[domain.SignatureFields]{Fields: signatureFields(s)})
	}
	return out
}

func assetEntries(in []AssetInput) []domain.Entry[domain.AssetFields] {
	out := make([]domain.Entry[domain.AssetFields], 0, len(in))
	for _, a := range in {
		out = append(out, domain.EntryOf(a.ID, assetFields(a)))
	}
	return out
}

func newAssetEntries(in []AssetInput) []domain.Entry[domain.AssetFields] {
	out := make([]domain.Entry[domain.AssetFields], 0, len(in))
	for _, a := range in {
		out = append(out, domain.NewEntry[domain.AssetFields]{Fields: assetFields(a)})
	}
	return out
}

// child describes how one nested collection is stored.
type child[F any, T any] struct {
	fresh    func(approvalID string) *T
	find     func(ctx context.Context, id string) (*T, error)
	create   func(ctx context.Context, row *T) error
	update   func(ctx context.Context, row *T) error
	owner    func(row *T) string
	apply    func(f F, row *T)
	validate func(ctx context.Context, f F) error
	// guard sees the row before (nil for a new entry) and after the fields are applied.
	guard    func(before, after *T) error
	missing  string
}

// upsert writes entries in order; an existing entry must belong to approvalID.
func upsert[F any, T any](ctx context.Context, c child[F, T], approvalID string, entries []domain.Entry[F]) ([]T, error) {
	out := make([]T, 0, len(entries))
	for _, e := range entries {
		var (
			row    *T
			before *T
			fields F
			write  func(ctx context.Context, row *T) error
		)
		switch e := e.(type) {
		case domain.NewEntry[F]:
			row, fields, write = c.fresh(approvalID), e.Fields, c.create
		case domain.ExistingEntry[F]:
			found, err := c.find(ctx, e.ID)
			if err != nil && !isNotFound(err) {
				return nil, err
			}
			if found == nil || c.owner(found) != approvalID {
				return nil, apperror.NotFound(c.missing, map[string]string{"id": e.ID})
			}
			prev := *found
			row, before, fields, write = found, &prev, e.Fields, c.update
		}
		if c.validate != nil {
			if err := c.validate(ctx, fields); err != nil {
				return nil, err
			}
		}
		c.apply(fields, row)
		if c.guard != nil {
			if err := c.guard(before, row); err != nil {
				return nil, err
			}
		}
		if err := write(ctx, row); err != nil {
			return nil, err
		}
		out = append(out, *row)
	}
	return out, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrSignatureNotFound) || errors.Is(err, domain.ErrAssetNotFound)
}

// signerChange rejects slot edits that would break the signed-state invariants for an approval in status.
// Signed slots keep their signer; DONE and REJECT approvals accept no signer changes at all.
func signerChange(status domain.Status) func(before, after *domain.Signature) error {
	return func(before, after *domain.Signature) error {
		if before != nil && before.IsSigned() && !sameSigner(before, after) {
			return apperror.Conflict("a signed signature cannot be reassigned", map[string]string{"id": before.ID}).
				Wrap(domain.ErrAlreadySigned)
		}
		if !domain.SignersLocked(status) {
			return nil
		}
		if before == nil || !sameSigner(before, after) || before.IsDeleted != after.IsDeleted {
			return apperror.Conflict("signatures cannot change once the approval is "+string(status), map[string]any{"status": status}).
				Wrap(domain.ErrSignersLocked)
		}
		return nil
	}
}

func sameSigner(a, b *domain.Signature) bool {
	return sameString(a.UserID, b.UserID) && sameString(a.Name, b.Name) && sameString(a.Email, b.Email)
}

func sameString(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func upsertSignatures(ctx context.Context, r uow.Repos, a *domain.Approval, entries []domain.Entry[domain.SignatureFields]) ([]domain.Signature, error) {
	return upsert(ctx, child[domain.SignatureFields, domain.Signature]{
		fresh:  func(aid string) *domain.Signature { return &domain.Signature{ID: id.New(), ApprovalID: aid} },
		find:   r.Approvals.FindSignature,
		create: r.Approvals.CreateSignature,
		update: r.Approvals.UpdateSignature,
		owner:  func(s *domain.Signature) string { return s.ApprovalID },
		apply: func(f domain.SignatureFields, s *domain.Signature) {
			f.Apply(s)
			if f.UserID == nil {
				return
			}
			// a bound slot without display fields borrows them from the user
			if u, err := r.Users.FindByID(ctx, *f.UserID); err == nil {
				s.User = u
				if s.Name == nil {
					name := u.FullName()
					s.Name = &name
				}
				if s.Email == nil {
					email := u.Email
					s.Email = &email
				}
			}
		},
		validate: func(ctx context.Context, f domain.SignatureFields) error {
			return checkUser(ctx, r, f.UserID)
		},
		guard:   signerChange(a.Status),
		missing: "signature not found",
	}, a.ID, entries)
}

func upsertAssets(ctx context.Context, r uow.Repos, approvalID string, entries []domain.Entry[domain.AssetFields]) ([]domain.Asset, error) {
	return upsert(ctx, child[domain.AssetFields, domain.Asset]{
		fresh:  func(aid string) *domain.Asset { return &domain.Asset{ID: id.New(), ApprovalID: aid} },
		find:   r.Approvals.FindAsset,
		create: r.Approvals.CreateAsset,
		update: r.Approvals.UpdateAsset,
		owner:  func(a *domain.Asset) string { return a.ApprovalID },
		apply:  func(f domain.AssetFields, a *domain.Asset) { f.Apply(a) },
		validate: func(ctx context.Context, f domain.AssetFields) error {
			if f.AssetID != nil {
				if _, err := r.Assets.FindByID(ctx, *f.AssetID); err != nil {
					if errors.Is(err, asset.ErrNotFound) {
						return apperror.NotFound("asset not found", map[string]string{"assetId": *f.AssetID}).Wrap(err)
					}
					return err
				}
			}
			if f.CategoryID != nil {
				if _, err := r.Categories.FindByID(ctx, *f.CategoryID); err != nil {
					if errors.Is(err, category.ErrNotFound) {
						return apperror.NotFound("category not found", map[string]string{"categoryId": *f.CategoryID}).Wrap(err)
					}
					return err
				}
			}
			return nil
		},
		missing: "approval asset not found",
	}, approvalID, entries)
}
