package pkgsign

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkgerio/pkger/internal/pkgerr"
	"github.com/pkgerio/pkger/internal/pkgruntime"
)

const keyFileName = "GPG-SIGN-KEY"

// Upload places the key's raw bytes into the container's tmp dir,
// returning the path it landed at.
func (k *Key) Upload(ctx context.Context, c *pkgruntime.Container, tmpDir string) (string, error) {
	err := c.CopyTo(ctx, tmpDir, []pkgruntime.Upload{{Path: keyFileName, Data: k.raw, Mode: 0600}})
	if err != nil {
		return "", err
	}
	return tmpDir + "/" + keyFileName, nil
}

// Import imports the key at path into the container's GPG database.
func (k *Key) Import(ctx context.Context, c *pkgruntime.Container, path string) error {
	cmd := fmt.Sprintf(`gpg --pinentry-mode=loopback --passphrase %s --import %s`, k.Passphrase, path)
	if _, err := c.CheckedExec(ctx, pkgruntime.ExecOptions{Cmd: cmd}); err != nil {
		return pkgerr.Wrap(ErrSign, err)
	}
	return nil
}

// SignDeb signs package with dpkg-sig, resolving the key's GPG key id via
// `gpg --list-keys --with-colons`.
func (k *Key) SignDeb(ctx context.Context, c *pkgruntime.Container, pkgPath string) error {
	result, err := c.CheckedExec(ctx, pkgruntime.ExecOptions{Cmd: "gpg --list-keys --with-colons"})
	if err != nil {
		return pkgerr.Wrap(ErrSign, err)
	}

	keyID := ""
	for _, line := range strings.Split(result.Stdout, "\n") {
		if !strings.Contains(line, k.Name) {
			continue
		}
		fields := strings.Split(line, ":")
		if len(fields) > 7 {
			keyID = fields[7]
		}
		break
	}
	if keyID == "" {
		return pkgerr.Wrapf(ErrSign, "no gpg key id found for %q", k.Name)
	}

	cmd := fmt.Sprintf(
		`dpkg-sig -k %s -g "--pinentry-mode=loopback --passphrase %s" --sign %s %s`,
		keyID, k.Passphrase, strings.ToLower(k.Name), pkgPath,
	)
	if _, err := c.CheckedExec(ctx, pkgruntime.ExecOptions{Cmd: cmd}); err != nil {
		return pkgerr.Wrap(ErrSign, err)
	}
	return nil
}

// SignRPM signs package with rpm --addsign, having written ~/.rpmmacros
// to point rpmbuild's sign hook at gpg in batch loopback mode and
// imported the exported public key into the rpm database.
func (k *Key) SignRPM(ctx context.Context, c *pkgruntime.Container, tmpDir, pkgPath string) error {
	macros := fmt.Sprintf(`
%%_signature gpg
%%_gpg_path /root/.gnupg
%%_gpg_name %s
%%_gpgbin /usr/bin/gpg2
%%__gpg_sign_cmd %%{__gpg} gpg --batch --verbose --pinentry-mode=loopback --passphrase %s -u "%%{_gpg_name}" -sbo %%{__signature_filename} --digest-algo sha256 %%{__plaintext_filename}
`, k.Name, k.Passphrase)

	err := c.CopyTo(ctx, "/root", []pkgruntime.Upload{{Path: ".rpmmacros", Data: []byte(macros), Mode: 0644}})
	if err != nil {
		return err
	}

	exportCmd := fmt.Sprintf(`gpg --pinentry-mode=loopback --passphrase %s --export -a '%s' > public.key`, k.Passphrase, k.Name)
	if _, err := c.CheckedExec(ctx, pkgruntime.ExecOptions{Cmd: exportCmd, WorkingDir: tmpDir}); err != nil {
		return pkgerr.Wrap(ErrSign, err)
	}

	if _, err := c.CheckedExec(ctx, pkgruntime.ExecOptions{Cmd: "rpm --import public.key", WorkingDir: tmpDir}); err != nil {
		return pkgerr.Wrap(ErrSign, err)
	}

	if _, err := c.CheckedExec(ctx, pkgruntime.ExecOptions{Cmd: fmt.Sprintf("rpm --addsign %s", pkgPath)}); err != nil {
		return pkgerr.Wrap(ErrSign, err)
	}
	return nil
}
