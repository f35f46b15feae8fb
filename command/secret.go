package command

import (
	"bytes"
	"errors"
	"fmt"
	"github.com/awnumar/memguard"
	"github.com/mattn/go-tty"
	"github.com/tigerwill90/ndnkdf/internal/enclave"
	"github.com/urfave/cli/v2"
	"os"
)

type SecretManager interface {
	Read(prompt string, confirm bool) ([]byte, error)
}

type Password func(prompt string, confirm bool) ([]byte, error)

func (p Password) Read(prompt string, confirm bool) ([]byte, error) {
	return p(prompt, confirm)
}

func readSecret(prompt string, confirm bool) ([]byte, error) {
	t, err := tty.Open()
	if err != nil {
		return nil, fmt.Errorf("unable to open terminal for password prompt: %w", err)
	}
	defer t.Close()

	ask := func(p string) (string, error) {
		if _, err := fmt.Fprint(t.Output(), p); err != nil {
			return "", err
		}
		pwd, err := t.ReadPassword()
		fmt.Fprintln(t.Output())
		return pwd, err
	}

	pwd, err := ask(prompt)
	if err != nil {
		return nil, err
	}

	if confirm {
		again, err := ask("Confirm password: ")
		if err != nil {
			return nil, err
		}
		if again != pwd {
			return nil, errors.New("passwords do not match")
		}
	}

	return []byte(pwd), nil
}

// loadPassword takes the password from the flag (or its env var), then the
// password file, then the terminal.
func loadPassword(cc *cli.Context, secret SecretManager, confirm bool) (*enclave.Enclave, error) {
	if cc.IsSet(passwordFlag) || cc.String(passwordFlag) != "" {
		return enclave.New([]byte(cc.String(passwordFlag))), nil
	}

	if path := cc.Path(passwordFileFlag); path != "" {
		buf, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("unable to read password file: %w", err)
		}
		pwd := bytes.TrimRight(buf, "\r\n")
		e := enclave.New(pwd)
		// the trimmed newline is outside pwd
		memguard.WipeBytes(buf)
		return e, nil
	}

	pwd, err := secret.Read("Password: ", confirm)
	if err != nil {
		return nil, err
	}
	return enclave.New(pwd), nil
}
