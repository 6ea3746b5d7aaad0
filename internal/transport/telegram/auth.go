package telegram

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gotd/td/telegram/auth"
	"github.com/gotd/td/tg"
)

type noSignUp struct{}

func (noSignUp) SignUp(context.Context) (auth.UserInfo, error) {
	return auth.UserInfo{}, errors.New("signing up is not supported")
}

func (noSignUp) AcceptTermsOfService(_ context.Context, tos tg.HelpTermsOfService) error {
	return &auth.SignUpRequired{TermsOfService: tos}
}

// terminalAuth performs the first-run login flow: phone, confirmation code
// and optional 2FA password read from the terminal.
type terminalAuth struct {
	noSignUp
	phone string
}

func (a terminalAuth) Phone(context.Context) (string, error) {
	return a.phone, nil
}

func (a terminalAuth) Code(context.Context, *tg.AuthSentCode) (string, error) {
	fmt.Printf("Enter the code sent to %s: ", a.phone)
	return readLine()
}

func (a terminalAuth) Password(context.Context) (string, error) {
	fmt.Print("Enter 2FA password: ")
	return readLine()
}

func readLine() (string, error) {
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
