package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"maumchat/client"
	"maumchat/pkg/services"
)

// Terminal front-end over the client package: landing menu, chat loop,
// announcements view and admin form, mirroring the four browser views.
func main() {
	server := flag.String("server", "http://localhost:5000", "backend base URL")
	flag.Parse()

	api := client.NewAPIClient(*server)
	session := client.NewSession(services.NewAdviceService(), api)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go runListener(ctx, *server, session)

	if err := session.RefreshAnnouncements(ctx); err != nil {
		log.Printf("[cli] initial announcement fetch failed: %v", err)
	}

	sc := bufio.NewScanner(os.Stdin)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		switch session.View() {
		case client.ViewStart:
			if !landing(sc, session) {
				return
			}
		case client.ViewChat:
			chatLoop(ctx, sc, session)
		case client.ViewHome:
			announcementsView(ctx, sc, session)
		case client.ViewAdmin:
			adminView(ctx, sc, session, api)
		}
	}
}

func runListener(ctx context.Context, server string, session *client.Session) {
	wsURL := "ws" + strings.TrimPrefix(server, "http") + "/ws/announcements"
	for {
		err := client.Listen(ctx, wsURL, func(ev client.Event) {
			if err := session.HandleEvent(ev); err != nil {
				log.Printf("[realtime] %v", err)
				return
			}
			if toast := session.Toast(); toast != nil {
				fmt.Printf("\n[알림] 새 공지: %s (메뉴 2에서 확인)\n", toast.Title)
			}
		})
		if ctx.Err() != nil {
			return
		}
		log.Printf("[realtime] listener dropped: %v", err)
		// no replay on reconnect; the full list is the source of truth
		if err := session.RefreshAnnouncements(ctx); err != nil {
			log.Printf("[realtime] resync failed: %v", err)
		}
		time.Sleep(3 * time.Second)
	}
}

func landing(sc *bufio.Scanner, session *client.Session) bool {
	fmt.Println()
	fmt.Println("=== 마음 상담소 ===")
	fmt.Println("1) 상담 시작")
	fmt.Println("2) 공지사항")
	fmt.Println("3) 관리자")
	fmt.Println("q) 종료")
	fmt.Print("> ")
	if !sc.Scan() {
		return false
	}
	switch strings.TrimSpace(sc.Text()) {
	case "1":
		_ = session.Navigate(client.ViewChat)
	case "2":
		_ = session.Navigate(client.ViewHome)
	case "3":
		_ = session.Navigate(client.ViewAdmin)
	case "q":
		return false
	}
	return true
}

func chatLoop(ctx context.Context, sc *bufio.Scanner, session *client.Session) {
	fmt.Println()
	fmt.Println("고민을 입력하세요. 줄 끝에 \\ 를 붙이면 줄바꿈, /back 으로 돌아갑니다.")
	for session.View() == client.ViewChat {
		fmt.Print("나> ")
		if !sc.Scan() {
			session.Reset()
			return
		}
		line := sc.Text()
		if strings.TrimSpace(line) == "/back" {
			session.Reset()
			return
		}
		// trailing backslash plays the modifier+Enter role of the composer
		if strings.HasSuffix(line, "\\") {
			session.Type(strings.TrimSuffix(line, "\\"))
			session.PressEnter(ctx, true)
			continue
		}
		session.Type(line)

		done := make(chan struct{})
		go showProgress(session, done)
		submitted := session.PressEnter(ctx, false)
		close(done)
		if !submitted {
			continue
		}

		msgs := session.Messages()
		reply := msgs[len(msgs)-1]
		fmt.Printf("\n상담사>\n%s\n\n", reply.Content)
		promptRating(ctx, sc, session, reply.ID)
	}
}

func showProgress(session *client.Session, done chan struct{}) {
	t := time.NewTicker(time.Second)
	defer t.Stop()
	for {
		select {
		case <-done:
			return
		case <-t.C:
			fmt.Printf("\r상담사가 답변을 작성 중입니다... %d초", session.Elapsed())
		}
	}
}

func promptRating(ctx context.Context, sc *bufio.Scanner, session *client.Session, messageID string) {
	fmt.Print("답변이 도움이 되었나요? 별점 1-5 (엔터로 건너뛰기)> ")
	if !sc.Scan() {
		return
	}
	text := strings.TrimSpace(sc.Text())
	if text == "" {
		return
	}
	n, err := strconv.Atoi(text)
	if err != nil || n < 1 || n > 5 {
		fmt.Println("1에서 5 사이의 숫자를 입력해 주세요.")
		return
	}
	if err := session.Rate(ctx, messageID, n); err != nil {
		fmt.Printf("별점 전송에 실패했어요: %v\n", err)
		return
	}
	fmt.Println("별점이 저장되었습니다. 감사합니다!")
}

func announcementsView(ctx context.Context, sc *bufio.Scanner, session *client.Session) {
	if err := session.RefreshAnnouncements(ctx); err != nil {
		fmt.Printf("공지 목록을 불러오지 못했어요: %v\n", err)
	}
	fmt.Println()
	fmt.Println("=== 공지사항 ===")
	list := session.Announcements()
	if len(list) == 0 {
		fmt.Println("등록된 공지가 없습니다.")
	}
	for _, a := range list {
		fmt.Printf("[%d] %s (%s)\n    %s\n", a.ID, a.Title, a.CreatedAt.Format("2006-01-02 15:04"), a.Content)
	}
	fmt.Print("엔터를 누르면 돌아갑니다> ")
	sc.Scan()
	_ = session.Navigate(client.ViewStart)
}

func adminView(ctx context.Context, sc *bufio.Scanner, session *client.Session, api *client.APIClient) {
	fmt.Println()
	fmt.Println("=== 관리자 ===")
	fmt.Println("1) 공지 등록  2) 공지 삭제  기타) 돌아가기")
	fmt.Print("> ")
	if !sc.Scan() {
		_ = session.Navigate(client.ViewStart)
		return
	}
	switch strings.TrimSpace(sc.Text()) {
	case "1":
		fmt.Print("제목> ")
		if !sc.Scan() {
			break
		}
		title := sc.Text()
		fmt.Print("내용> ")
		if !sc.Scan() {
			break
		}
		content := sc.Text()
		created, err := api.CreateAnnouncement(ctx, title, content)
		if err != nil {
			fmt.Printf("공지 등록에 실패했어요: %v\n", err)
			break
		}
		fmt.Printf("공지 #%d 이(가) 등록되었습니다.\n", created.ID)
	case "2":
		fmt.Print("삭제할 공지 번호> ")
		if !sc.Scan() {
			break
		}
		id, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
		if err != nil {
			fmt.Println("숫자를 입력해 주세요.")
			break
		}
		if err := api.DeleteAnnouncement(ctx, uint(id)); err != nil {
			fmt.Printf("공지 삭제에 실패했어요: %v\n", err)
			break
		}
		fmt.Println("공지가 삭제되었습니다.")
	}
	_ = session.Navigate(client.ViewStart)
}
